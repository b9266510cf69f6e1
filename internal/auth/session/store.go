// Package session defines the session store contract and its drivers.
//
// The store is the source of truth for live sessions; bearer tokens only
// reference entries here. The memory driver serves single-instance and
// test deployments, the redis driver makes sessions shared across
// horizontally scaled instances.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/artpromedia/oru/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("session: not found")
	ErrAlreadyExists = errors.New("session: already exists")
)

// Store is the keyed store of active sessions.
//
// Expiry is enforced on read: any Get, Touch or MarkVerified that finds a
// lapsed entry must treat it as absent and remove it. DeleteExpired backs
// the periodic sweeper for drivers without native TTL support.
type Store interface {
	// Create inserts a new session. Session IDs are never reused.
	Create(ctx context.Context, s domain.Session) error

	// Get returns a live session, lazily evicting it if expired.
	Get(ctx context.Context, id string) (domain.Session, error)

	// Touch extends the session's expiry (sliding window) and returns
	// the updated session.
	Touch(ctx context.Context, id string, expiresAt time.Time) (domain.Session, error)

	// MarkVerified flips the MFA gate to verified. The transition is
	// one-way; there is no way to un-verify a session.
	MarkVerified(ctx context.Context, id string) (domain.Session, error)

	// Delete removes a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes lapsed sessions and reports how many. Drivers
	// with native TTL expiry may implement this as a no-op.
	DeleteExpired(ctx context.Context) (int, error)

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}
