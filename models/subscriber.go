package models

import "time"

// Subscriber is a mailing-list capture recorded as a side effect of a
// successful CLI submission. Not a first-class workflow.
type Subscriber struct {
	Email     string    `json:"email" gorm:"primaryKey"`
	Timestamp time.Time `json:"timestamp"`
}
