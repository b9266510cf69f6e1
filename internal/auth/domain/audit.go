package domain

import "time"

// AuditAction names a recordable auth event.
type AuditAction string

const (
	AuditLoginSuccess AuditAction = "login_success"
	AuditLogout       AuditAction = "logout"
)

// AuditEvent is an append-only record of an auth event, ordered per
// tenant and user. Recording is best-effort and never gates the
// operation being recorded.
type AuditEvent struct {
	ID        string
	TenantID  string
	UserID    string
	SessionID string
	Action    AuditAction
	At        time.Time
}
