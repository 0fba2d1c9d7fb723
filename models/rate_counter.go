package models

import "time"

// RateCounter is fixed-window rate-limit state, keyed by
// "ratelimit:<endpoint>:<ip>". The window is anchored to the first
// increment: later hits bump Count but never move WindowEndsAt.
type RateCounter struct {
	Key          string    `gorm:"primaryKey"`
	Count        int64     `gorm:"default:0"`
	WindowEndsAt time.Time `gorm:"index"`
}
