package services

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"shiphaus-platform/models"
	"shiphaus-platform/store"
	"shiphaus-platform/utils"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// SubmissionService owns the web intake channel and the admin review
// workflow (approve/reject).
type SubmissionService struct {
	Store store.Store
}

func NewSubmissionService(st store.Store) *SubmissionService {
	return &SubmissionService{Store: st}
}

// SubmitInput is the web-form payload.
type SubmitInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	DeployedURL string `json:"deployedUrl"`
	GithubURL   string `json:"githubUrl"`
	BuilderName string `json:"builderName"`
	ChapterID   string `json:"chapterId"`
	EventID     string `json:"eventId"`
}

// Submit validates the web-channel constraints and persists a pending
// submission. Nothing is persisted on a validation failure.
func (s *SubmissionService) Submit(in SubmitInput) (*models.Submission, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	builderName := strings.TrimSpace(in.BuilderName)

	if len(title) < 3 || len(title) > 100 {
		return nil, validationErr("Title must be 3-100 characters.")
	}
	if len(description) < 10 {
		return nil, validationErr("Description must be at least 10 characters.")
	}
	if len(description) > 500 {
		return nil, validationErr("Description must be at most 500 characters.")
	}
	if len(builderName) < 2 {
		return nil, validationErr("Builder name must be at least 2 characters.")
	}
	if in.DeployedURL != "" && !utils.IsValidURL(in.DeployedURL) {
		return nil, validationErr("Invalid live URL.")
	}
	if in.GithubURL != "" && !utils.IsValidURL(in.GithubURL) {
		return nil, validationErr("Invalid source link URL.")
	}

	sub := &models.Submission{
		ID:          "sub-" + uuid.NewString(),
		Title:       title,
		Description: description,
		Type:        in.Type,
		DeployedURL: strings.TrimSpace(in.DeployedURL),
		GithubURL:   strings.TrimSpace(in.GithubURL),
		BuilderName: builderName,
		ChapterID:   in.ChapterID,
		EventID:     in.EventID,
		SubmittedAt: time.Now(),
		Status:      models.SubmissionStatusPending,
	}
	if err := s.Store.CreateSubmission(sub); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return sub, nil
}

// Pending returns the admin review queue, newest first.
func (s *SubmissionService) Pending() ([]models.Submission, error) {
	return s.Store.PendingSubmissions()
}

// Approve turns a pending submission into a published project. It is
// idempotent: the pending -> approved flip is a compare-and-swap, and the
// created project's id is stored back on the submission, so a retried
// approve returns the existing project instead of minting a duplicate.
func (s *SubmissionService) Approve(id, chapterID, eventID, reviewer string) (*models.Project, error) {
	if chapterID == "" {
		return nil, validationErr("chapterId is required to approve.")
	}

	sub, err := s.Store.GetSubmission(id)
	if err != nil {
		return nil, err
	}
	if sub.Status == models.SubmissionStatusApproved && sub.ProjectID != "" {
		return s.Store.GetProject(sub.ProjectID)
	}

	claimed, err := s.Store.ClaimSubmission(id)
	if err != nil {
		return nil, fmt.Errorf("claim submission: %w", err)
	}
	if !claimed {
		// Someone else got there first; hand back whatever they produced.
		sub, err = s.Store.GetSubmission(id)
		if err != nil {
			return nil, err
		}
		if sub.ProjectID != "" {
			return s.Store.GetProject(sub.ProjectID)
		}
		return nil, fmt.Errorf("submission %s already claimed", id)
	}

	if eventID == "" {
		eventID = sub.EventID
	}

	now := time.Now()
	project := &models.Project{
		ID:          "proj-" + uuid.NewString(),
		Title:       strings.TrimSpace(sub.Title),
		Description: strings.TrimSpace(sub.Description),
		DeployedURL: strings.TrimSpace(sub.DeployedURL),
		GithubURL:   strings.TrimSpace(sub.GithubURL),
		CreatedAt:   now,
		ChapterID:   chapterID,
		EventID:     eventID,
		Builder: models.Builder{
			Name:   sub.BuilderName,
			Avatar: defaultAvatar(sub.BuilderName),
			UID:    slug.Make(sub.BuilderName),
		},
		Type:       sub.Type,
		ApprovedAt: &now,
		ApprovedBy: reviewer,
	}
	if err := s.Store.CreateProject(project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	if err := s.Store.SetSubmissionProject(id, project.ID); err != nil {
		// The project exists; losing the back-reference only weakens
		// idempotency of a future retry. Log and move on.
		log.Printf("⚠️  failed to record project back-reference for %s: %v", id, err)
	}
	if eventID != "" {
		if err := s.Store.IncrementEventProjectCount(eventID); err != nil {
			log.Printf("⚠️  failed to bump project count for event %s: %v", eventID, err)
		}
	}
	return project, nil
}

// Reject removes a submission from the queue. Rejecting an already-gone
// submission is a no-op success.
func (s *SubmissionService) Reject(id string) error {
	return s.Store.DeleteSubmission(id)
}

func defaultAvatar(name string) string {
	return "https://api.dicebear.com/7.x/notionists/svg?seed=" +
		url.QueryEscape(name) + "&backgroundColor=c0aede"
}
