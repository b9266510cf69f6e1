// Package audit records auth events on a best-effort basis. A slow or
// failing sink must never block or fail the operation being recorded.
package audit

import (
	"context"
	"time"

	"github.com/artpromedia/oru/internal/auth/domain"
	"github.com/artpromedia/oru/internal/auth/store"
	"github.com/artpromedia/oru/pkg/idx"
)

// Sink persists audit events. Implementations may block; callers should
// go through the Dispatcher rather than calling a sink directly.
type Sink interface {
	Record(ctx context.Context, e domain.AuditEvent) error
}

// StoreSink appends events to the relational audit log.
type StoreSink struct {
	Logs store.AuditLogs
}

func (s *StoreSink) Record(ctx context.Context, e domain.AuditEvent) error {
	return s.Logs.Append(ctx, e)
}

// NopSink discards events. Used when no audit backend is configured.
type NopSink struct{}

func (NopSink) Record(context.Context, domain.AuditEvent) error { return nil }

// NewEvent builds an event for the given session with a fresh ID.
func NewEvent(action domain.AuditAction, s domain.Session) domain.AuditEvent {
	return domain.AuditEvent{
		ID:        idx.New().String(),
		TenantID:  s.TenantID,
		UserID:    s.UserID,
		SessionID: s.ID,
		Action:    action,
		At:        time.Now().UTC(),
	}
}
