package store

import (
	"sort"
	"sync"
	"time"

	"shiphaus-platform/models"
)

// MemStore is a mutex-guarded in-memory Store. It backs tests and local
// development without a database; semantics mirror GormStore, including
// window anchoring on counters and expiry filtering on token reads.
type MemStore struct {
	mu          sync.Mutex
	chapters    map[string]models.Chapter
	events      map[string]models.Event
	submissions map[string]models.Submission
	projects    map[string]models.Project
	tokens      map[string]models.CliToken
	subscribers map[string]models.Subscriber
	leads       map[string]models.LeadApplication
	counters    map[string]models.RateCounter

	// Now is the clock; tests override it to simulate expiry.
	Now func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{
		chapters:    map[string]models.Chapter{},
		events:      map[string]models.Event{},
		submissions: map[string]models.Submission{},
		projects:    map[string]models.Project{},
		tokens:      map[string]models.CliToken{},
		subscribers: map[string]models.Subscriber{},
		leads:       map[string]models.LeadApplication{},
		counters:    map[string]models.RateCounter{},
		Now:         time.Now,
	}
}

func (s *MemStore) SeedChapters(chapters []models.Chapter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range chapters {
		if _, ok := s.chapters[ch.ID]; !ok {
			s.chapters[ch.ID] = ch
		}
	}
	return nil
}

func (s *MemStore) ListChapters() ([]models.Chapter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Chapter, 0, len(s.chapters))
	for _, ch := range s.chapters {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].City < out[j].City })
	return out, nil
}

func (s *MemStore) CreateEvent(event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ID] = *event
	return nil
}

func (s *MemStore) GetEvent(id string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &event, nil
}

func (s *MemStore) ListEvents() ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Event, 0, len(s.events))
	for _, event := range s.events {
		out = append(out, event)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *MemStore) UpdateEvent(id string, patch EventPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return ErrNotFound
	}
	if patch.Name != nil {
		event.Name = *patch.Name
	}
	if patch.Date != nil {
		event.Date = *patch.Date
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}
	if patch.Status != nil {
		event.Status = *patch.Status
	}
	s.events[id] = event
	return nil
}

func (s *MemStore) DeleteEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return ErrNotFound
	}
	delete(s.events, id)
	return nil
}

func (s *MemStore) IncrementEventProjectCount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return nil
	}
	event.ProjectCount++
	s.events[id] = event
	return nil
}

func (s *MemStore) CreateSubmission(sub *models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[sub.ID] = *sub
	return nil
}

func (s *MemStore) GetSubmission(id string) (*models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.submissions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sub, nil
}

func (s *MemStore) PendingSubmissions() ([]models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Submission
	for _, sub := range s.submissions {
		if sub.Status == models.SubmissionStatusPending {
			out = append(out, sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

func (s *MemStore) ClaimSubmission(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.submissions[id]
	if !ok || sub.Status != models.SubmissionStatusPending {
		return false, nil
	}
	sub.Status = models.SubmissionStatusApproved
	s.submissions[id] = sub
	return true, nil
}

func (s *MemStore) SetSubmissionProject(id, projectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.submissions[id]
	if !ok {
		return nil
	}
	sub.ProjectID = projectID
	s.submissions[id] = sub
	return nil
}

func (s *MemStore) DeleteSubmission(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.submissions, id)
	return nil
}

func (s *MemStore) CreateProject(project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[project.ID] = *project
	return nil
}

func (s *MemStore) GetProject(id string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &project, nil
}

func (s *MemStore) ListProjects() ([]models.Project, error) {
	return s.filterProjects(func(models.Project) bool { return true })
}

func (s *MemStore) ProjectsByChapter(chapterID string) ([]models.Project, error) {
	return s.filterProjects(func(p models.Project) bool { return p.ChapterID == chapterID })
}

func (s *MemStore) ProjectsByEvent(eventID string) ([]models.Project, error) {
	return s.filterProjects(func(p models.Project) bool { return p.EventID == eventID })
}

func (s *MemStore) filterProjects(keep func(models.Project) bool) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Project
	for _, project := range s.projects {
		if keep(project) {
			out = append(out, project)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemStore) UpdateProject(id string, patch ProjectPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.projects[id]
	if !ok {
		return ErrNotFound
	}
	if patch.Title != nil {
		project.Title = *patch.Title
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.DeployedURL != nil {
		project.DeployedURL = *patch.DeployedURL
	}
	if patch.GithubURL != nil {
		project.GithubURL = *patch.GithubURL
	}
	s.projects[id] = project
	return nil
}

func (s *MemStore) SetProjectFeatured(id string, featured bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	project, ok := s.projects[id]
	if !ok {
		return ErrNotFound
	}
	project.Featured = featured
	s.projects[id] = project
	return nil
}

func (s *MemStore) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *MemStore) Stats() (*Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &Stats{TotalEvents: int64(len(s.events))}
	for _, project := range s.projects {
		stats.TotalProjects++
		if project.Featured {
			stats.FeaturedProjects++
		}
	}
	for _, sub := range s.submissions {
		if sub.Status == models.SubmissionStatusPending {
			stats.PendingSubmissions++
		}
	}
	return stats, nil
}

func (s *MemStore) PutCliToken(token *models.CliToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.Token] = *token
	return nil
}

func (s *MemStore) GetCliToken(token string) (*models.CliToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.tokens[token]
	if !ok || !row.ExpiresAt.After(s.Now()) {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (s *MemStore) DeleteCliToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

func (s *MemStore) AddSubscriber(email string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[email]; !ok {
		s.subscribers[email] = models.Subscriber{Email: email, Timestamp: at}
	}
	return nil
}

func (s *MemStore) ListSubscribers() ([]models.Subscriber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Subscriber, 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (s *MemStore) CreateLead(lead *models.LeadApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads[lead.ID] = *lead
	return nil
}

// Leads returns stored lead applications (test helper; there is no public
// listing endpoint).
func (s *MemStore) Leads() []models.LeadApplication {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LeadApplication, 0, len(s.leads))
	for _, lead := range s.leads {
		out = append(out, lead)
	}
	return out
}

func (s *MemStore) IncrCounter(key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	counter, ok := s.counters[key]
	if !ok || !counter.WindowEndsAt.After(now) {
		counter = models.RateCounter{Key: key, Count: 1, WindowEndsAt: now.Add(window)}
	} else {
		counter.Count++
	}
	s.counters[key] = counter
	return counter.Count, nil
}

func (s *MemStore) PurgeExpired(now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for token, row := range s.tokens {
		if !row.ExpiresAt.After(now) {
			delete(s.tokens, token)
			purged++
		}
	}
	for key, counter := range s.counters {
		if !counter.WindowEndsAt.After(now) {
			delete(s.counters, key)
			purged++
		}
	}
	return purged, nil
}
