// Package session provides durable, TTL-bounded storage for in-progress
// interview sessions. Implementations persist the serialized session blob
// under its session ID; expiry is the only cancellation mechanism.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/careerforge/interviewer/internal/model/interview"
)

// ErrSessionExpired covers both a store miss and an elapsed TTL; the caller
// cannot distinguish the two and should restart the interview.
var ErrSessionExpired = errors.New("session not found or expired")

// Store is the contract the session controller persists through. Set always
// refreshes the TTL; Delete is idempotent.
type Store interface {
	Get(ctx context.Context, sessionID string) (*interview.Session, error)
	Set(ctx context.Context, sess *interview.Session, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}
