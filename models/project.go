package models

import "time"

// Builder is the synthesized identity attached to a published project.
type Builder struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	UID    string `json:"uid"`
}

// Project is a published entry visible on the public site. Created either by
// admin approval of a Submission or directly by the trusted CLI path.
type Project struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	Title         string     `json:"title" gorm:"not null"`
	Description   string     `json:"description"`
	DeployedURL   string     `json:"deployedUrl,omitempty"`
	GithubURL     string     `json:"githubUrl,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	ChapterID     string     `json:"chapterId" gorm:"index"`
	EventID       string     `json:"eventId,omitempty" gorm:"index"`
	Builder       Builder    `json:"builder" gorm:"embedded;embeddedPrefix:builder_"`
	Type          string     `json:"type,omitempty"`
	Featured      bool       `json:"featured" gorm:"default:false"`
	SubmittedBy   string     `json:"submittedBy,omitempty"` // email of the original author, for ownership checks
	ScreenshotURL string     `json:"screenshotUrl,omitempty"`
	ApprovedAt    *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy    string     `json:"approvedBy,omitempty"`
}
