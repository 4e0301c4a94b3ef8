// File: internal/service/whop_state.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quantedgeb/internal/cache"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	whopStatePrefix = "whop:state:"
	whopStateTTL    = 5 * time.Minute
)

// ErrStateNotFound is returned when the callback presents a state id that was
// never issued, already consumed, or expired.
var ErrStateNotFound = errors.New("authorization state not found or expired")

// WhopAuthState is the server-side pending-authorization record. The OAuth
// state parameter only carries its random id, never the user id itself.
type WhopAuthState struct {
	UserID string `json:"user_id"`
	Next   string `json:"next"`
}

// SaveWhopAuthState stores the record and returns the opaque state id to put
// in the authorization URL.
func SaveWhopAuthState(ctx context.Context, c cache.Cache, st WhopAuthState) (string, error) {
	payload, err := json.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("marshal state: %w", err)
	}
	id := uuid.NewString()
	if err := c.Set(ctx, whopStatePrefix+id, payload, whopStateTTL).Err(); err != nil {
		return "", fmt.Errorf("persist state: %w", err)
	}
	return id, nil
}

// TakeWhopAuthState loads and consumes the record. Each state id is single
// use; a second lookup fails.
func TakeWhopAuthState(ctx context.Context, c cache.Cache, id string) (*WhopAuthState, error) {
	raw, err := c.Get(ctx, whopStatePrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrStateNotFound
		}
		return nil, fmt.Errorf("load state: %w", err)
	}
	var st WhopAuthState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	// Best effort: an orphaned key ages out with the TTL anyway.
	c.Del(ctx, whopStatePrefix+id)
	return &st, nil
}
