// File: internal/model/user.go
package model

import "time"

// Tier values derived from Whop membership verification.
const (
	TierFree    = "free"
	TierPremium = "premium"
)

type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	Name         string     `db:"name" json:"name"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Verified     bool       `db:"verified" json:"verified"`
	WhopVerified bool       `db:"whop_verified" json:"whopVerified"`
	Tier         string     `db:"tier" json:"tier"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	LastLogin    *time.Time `db:"last_login" json:"lastLogin,omitempty"`
}
