package store

import (
	"context"
	"errors"
	"time"

	"github.com/artpromedia/oru/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the data access interface for the tenant credential store and
// the audit log. Concrete drivers (sqlite today, postgres later) implement
// it. The auth subsystem treats credentials as read-only reference data;
// the only write-back is the informational last-login timestamp.
type Store interface {
	Credentials() Credentials
	AuditLogs() AuditLogs

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Credentials interface {
	// GetByEmail resolves a credential scoped to a tenant. Lookups are
	// always tenant-scoped; the same email may exist in several tenants.
	GetByEmail(ctx context.Context, tenantID, email string) (domain.Credential, error)

	// GetByID resolves a credential by its user id, e.g. when the MFA
	// challenge re-resolves the account's secret.
	GetByID(ctx context.Context, id string) (domain.Credential, error)

	// Create inserts a new credential (id is provided by the app via ULID).
	Create(ctx context.Context, c domain.Credential) error

	// UpdateLastLogin records a completed login. Informational; callers
	// treat failures as non-fatal.
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

type AuditLogs interface {
	// Append writes one audit event. Events are append-only.
	Append(ctx context.Context, e domain.AuditEvent) error

	// ListByUser returns the newest events for a tenant+user pair,
	// newest first, capped at limit.
	ListByUser(ctx context.Context, tenantID, userID string, limit int) ([]domain.AuditEvent, error)
}
