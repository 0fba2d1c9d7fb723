package models

import "time"

// CliTokenPrefix namespaces every issued CLI token. A presented token
// without this prefix is rejected before the store is consulted.
const CliTokenPrefix = "sh_cli_"

// CliTokenTTL is how long a minted token stays redeemable.
const CliTokenTTL = 30 * time.Minute

// CliToken is a short-lived single-use bearer credential for programmatic
// submission. Deleted on redemption; the reaper sweeps the rest once the
// TTL lapses.
type CliToken struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"not null"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"index"`
}
