package models

const (
	EventStatusUpcoming = "upcoming"
	EventStatusActive   = "active"
	EventStatusClosed   = "closed"
)

// Event is a scheduled build day belonging to a chapter. Status is the only
// field that changes in normal operation; the counters are informational.
type Event struct {
	ID           string `json:"id" gorm:"primaryKey"`
	ChapterID    string `json:"chapterId" gorm:"index;not null"`
	Name         string `json:"name" gorm:"not null"`
	Date         string `json:"date"`
	Location     string `json:"location"`
	BuilderCount int    `json:"builderCount" gorm:"default:0"`
	ProjectCount int    `json:"projectCount" gorm:"default:0"`
	Status       string `json:"status" gorm:"default:'upcoming'"` // upcoming | active | closed
}
