// File: internal/model/session.go
package model

import "time"

type Session struct {
	UserID    string    `db:"user_id" json:"userId"`
	Token     string    `db:"token" json:"token"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
}
