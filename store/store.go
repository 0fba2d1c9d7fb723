package store

import (
	"errors"
	"time"

	"shiphaus-platform/models"
)

// ErrNotFound is returned when an operated-on id does not exist. Handlers
// map it to 404; nothing else in the store's error surface is exposed to
// clients.
var ErrNotFound = errors.New("record not found")

// EventPatch is a partial event update. Nil fields are left untouched.
type EventPatch struct {
	Name     *string
	Date     *string
	Location *string
	Status   *string
}

// ProjectPatch is a partial project update (owner/admin edit surface).
type ProjectPatch struct {
	Title       *string
	Description *string
	DeployedURL *string
	GithubURL   *string
}

// Stats is the admin dashboard snapshot.
type Stats struct {
	TotalProjects      int64 `json:"totalProjects"`
	FeaturedProjects   int64 `json:"featuredProjects"`
	TotalEvents        int64 `json:"totalEvents"`
	PendingSubmissions int64 `json:"pendingSubmissions"`
}

// Store is the persistence surface the rest of the service depends on.
// Every method is an atomic single-record operation; the only multi-record
// guarantees are IncrCounter (atomic fixed-window increment) and
// ClaimSubmission (compare-and-swap on submission status).
type Store interface {
	// Chapters (static reference data).
	SeedChapters(chapters []models.Chapter) error
	ListChapters() ([]models.Chapter, error)

	// Events.
	CreateEvent(event *models.Event) error
	GetEvent(id string) (*models.Event, error)
	ListEvents() ([]models.Event, error)
	UpdateEvent(id string, patch EventPatch) error
	DeleteEvent(id string) error
	IncrementEventProjectCount(id string) error

	// Submissions.
	CreateSubmission(sub *models.Submission) error
	GetSubmission(id string) (*models.Submission, error)
	PendingSubmissions() ([]models.Submission, error)
	// ClaimSubmission flips status pending -> approved and reports whether
	// this caller performed the flip. A false return with a nil error means
	// the submission was already out of pending (or gone).
	ClaimSubmission(id string) (bool, error)
	SetSubmissionProject(id, projectID string) error
	DeleteSubmission(id string) error

	// Projects.
	CreateProject(project *models.Project) error
	GetProject(id string) (*models.Project, error)
	ListProjects() ([]models.Project, error)
	ProjectsByChapter(chapterID string) ([]models.Project, error)
	ProjectsByEvent(eventID string) ([]models.Project, error)
	UpdateProject(id string, patch ProjectPatch) error
	SetProjectFeatured(id string, featured bool) error
	DeleteProject(id string) error
	Stats() (*Stats, error)

	// CLI tokens. GetCliToken never returns an expired row, even before the
	// reaper has swept it.
	PutCliToken(token *models.CliToken) error
	GetCliToken(token string) (*models.CliToken, error)
	DeleteCliToken(token string) error

	// Subscribers.
	AddSubscriber(email string, at time.Time) error
	ListSubscribers() ([]models.Subscriber, error)

	// Lead applications.
	CreateLead(lead *models.LeadApplication) error

	// IncrCounter atomically increments the named fixed-window counter and
	// returns the post-increment count. The window is created on the first
	// increment and never extended by later ones.
	IncrCounter(key string, window time.Duration) (int64, error)

	// PurgeExpired drops lapsed CLI tokens and rate counters. Returns the
	// number of rows removed.
	PurgeExpired(now time.Time) (int64, error)
}
