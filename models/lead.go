package models

import "time"

// LeadApplication is a chapter-lead application from the start-a-chapter
// form.
type LeadApplication struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"not null"`
	City         string    `json:"city"`
	Twitter      string    `json:"twitter,omitempty"`
	Linkedin     string    `json:"linkedin,omitempty"`
	WhatYouBuild string    `json:"whatYouBuild"`
	Why          string    `json:"why"`
	WhoYouInvite string    `json:"whoYouInvite,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
