package services

import (
	"fmt"

	"shiphaus-platform/models"
	"shiphaus-platform/store"

	"github.com/google/uuid"
)

// EventService owns the event lifecycle and the static chapter roster.
type EventService struct {
	Store store.Store
}

func NewEventService(st store.Store) *EventService {
	return &EventService{Store: st}
}

type CreateEventInput struct {
	Name      string `json:"name"`
	ChapterID string `json:"chapterId"`
	Date      string `json:"date"`
	Location  string `json:"location"`
}

// Create makes a new upcoming event with zero counters.
func (s *EventService) Create(in CreateEventInput) (*models.Event, error) {
	if in.Name == "" || in.ChapterID == "" || in.Date == "" || in.Location == "" {
		return nil, validationErr("Missing required fields")
	}
	event := &models.Event{
		ID:        "evt-" + uuid.NewString(),
		ChapterID: in.ChapterID,
		Name:      in.Name,
		Date:      in.Date,
		Location:  in.Location,
		Status:    models.EventStatusUpcoming,
	}
	if err := s.Store.CreateEvent(event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *EventService) List() ([]models.Event, error) {
	return s.Store.ListEvents()
}

func (s *EventService) Chapters() ([]models.Chapter, error) {
	return s.Store.ListChapters()
}

type UpdateEventInput struct {
	Name     *string `json:"name"`
	Date     *string `json:"date"`
	Location *string `json:"location"`
	Status   *string `json:"status"`
}

// Update merges the provided fields. Status accepts any of the three values
// in any order; there is no enforced transition graph.
func (s *EventService) Update(id string, in UpdateEventInput) (*models.Event, error) {
	if in.Status != nil {
		switch *in.Status {
		case models.EventStatusUpcoming, models.EventStatusActive, models.EventStatusClosed:
		default:
			return nil, validationErr("Invalid status")
		}
	}
	patch := store.EventPatch{
		Name:     in.Name,
		Date:     in.Date,
		Location: in.Location,
		Status:   in.Status,
	}
	if err := s.Store.UpdateEvent(id, patch); err != nil {
		return nil, err
	}
	return s.Store.GetEvent(id)
}

// Delete removes the event unconditionally. Projects referencing it keep a
// dangling eventId; that is accepted.
func (s *EventService) Delete(id string) error {
	return s.Store.DeleteEvent(id)
}

func (s *EventService) Get(id string) (*models.Event, error) {
	return s.Store.GetEvent(id)
}
