// File: internal/store/user.go
package store

import (
	"context"
	"fmt"
	"time"

	"quantedgeb/internal/database"
	"quantedgeb/internal/model"

	"github.com/google/uuid"
)

const userColumns = `id, email, name, password_hash, verified, whop_verified, tier, created_at, last_login`

func scanUser(row interface{ Scan(dest ...any) error }, u *model.User) error {
	return row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.Verified,
		&u.WhopVerified,
		&u.Tier,
		&u.CreatedAt,
		&u.LastLogin,
	)
}

func GetUserByID(ctx context.Context, db database.DB, userID string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`,
		email,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

// CreateUser inserts u and fills in its generated id and created_at.
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Tier == "" {
		u.Tier = model.TierFree
	}
	row := db.QueryRow(ctx,
		`INSERT INTO users (id, email, name, password_hash, verified, whop_verified, tier)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		u.ID,
		u.Email,
		u.Name,
		u.PasswordHash,
		u.Verified,
		u.WhopVerified,
		u.Tier,
	)
	if err := row.Scan(&u.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

func UpdateUser(ctx context.Context, db database.DB, u *model.User) error {
	_, err := db.Exec(ctx,
		`UPDATE users SET email = $1, name = $2, verified = $3, whop_verified = $4, tier = $5
		 WHERE id = $6`,
		u.Email,
		u.Name,
		u.Verified,
		u.WhopVerified,
		u.Tier,
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("UpdateUser: %w", err)
	}
	return nil
}

func SetLastLogin(ctx context.Context, db database.DB, userID string, at time.Time) error {
	_, err := db.Exec(ctx,
		`UPDATE users SET last_login = $1 WHERE id = $2`,
		at,
		userID,
	)
	if err != nil {
		return fmt.Errorf("SetLastLogin: %w", err)
	}
	return nil
}

// VerifyUser flips the email-verified flag and returns the updated row.
func VerifyUser(ctx context.Context, db database.DB, userID string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users SET verified = TRUE WHERE id = $1
		 RETURNING `+userColumns,
		userID,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, fmt.Errorf("VerifyUser: %w", err)
	}
	return u, nil
}

// SetWhopVerified records the membership check result; tier follows the flag.
// Repeated calls are idempotent.
func SetWhopVerified(ctx context.Context, db database.DB, userID string, verified bool) (*model.User, error) {
	tier := model.TierFree
	if verified {
		tier = model.TierPremium
	}
	row := db.QueryRow(ctx,
		`UPDATE users SET whop_verified = $1, tier = $2 WHERE id = $3
		 RETURNING `+userColumns,
		verified,
		tier,
		userID,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, fmt.Errorf("SetWhopVerified: %w", err)
	}
	return u, nil
}
