package models

import "time"

const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

const (
	ProjectTypeWebsite     = "website"
	ProjectTypeApplication = "application"
	ProjectTypeDevtool     = "devtool"
	ProjectTypeVideo       = "video"
	ProjectTypeOther       = "other"
)

// Submission is an unreviewed project entry from the web form, waiting in
// the admin queue. Approval produces exactly one Project; ProjectID is the
// back-reference set by the approval transition so a retried approve can
// return the already-created project instead of duplicating it.
type Submission struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	DeployedURL string    `json:"deployedUrl,omitempty"`
	GithubURL   string    `json:"githubUrl,omitempty"`
	BuilderName string    `json:"builderName"`
	ChapterID   string    `json:"chapterId,omitempty"`
	EventID     string    `json:"eventId,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
	Status      string    `json:"status" gorm:"index;default:'pending'"` // pending | approved | rejected
	ProjectID   string    `json:"-"`
}
