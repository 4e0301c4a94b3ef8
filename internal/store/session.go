// File: internal/store/session.go
package store

import (
	"context"
	"fmt"
	"time"

	"quantedgeb/internal/database"
	"quantedgeb/internal/model"
)

func CreateSession(ctx context.Context, db database.DB, s *model.Session) error {
	_, err := db.Exec(ctx,
		`INSERT INTO sessions (user_id, token, created_at, expires_at)
		 VALUES ($1, $2, $3, $4)`,
		s.UserID,
		s.Token,
		s.CreatedAt,
		s.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("CreateSession: %w", err)
	}
	return nil
}

// GetSessionByToken returns the session only while it has not expired.
func GetSessionByToken(ctx context.Context, db database.DB, token string) (*model.Session, error) {
	row := db.QueryRow(ctx,
		`SELECT user_id, token, created_at, expires_at
		 FROM sessions WHERE token = $1 AND expires_at > now()`,
		token,
	)
	s := &model.Session{}
	if err := row.Scan(&s.UserID, &s.Token, &s.CreatedAt, &s.ExpiresAt); err != nil {
		return nil, fmt.Errorf("GetSessionByToken: %w", err)
	}
	return s, nil
}

func DeleteSessionByToken(ctx context.Context, db database.DB, token string) error {
	_, err := db.Exec(ctx,
		`DELETE FROM sessions WHERE token = $1`,
		token,
	)
	if err != nil {
		return fmt.Errorf("DeleteSessionByToken: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes rows past their expiry and reports how many.
func DeleteExpiredSessions(ctx context.Context, db database.DB, before time.Time) (int64, error) {
	tag, err := db.Exec(ctx,
		`DELETE FROM sessions WHERE expires_at <= $1`,
		before,
	)
	if err != nil {
		return 0, fmt.Errorf("DeleteExpiredSessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
