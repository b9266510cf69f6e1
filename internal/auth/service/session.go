package service

import (
	"context"
	"errors"

	"github.com/artpromedia/oru/internal/auth/audit"
	"github.com/artpromedia/oru/internal/auth/domain"
	"github.com/artpromedia/oru/internal/auth/session"
)

// SessionService handles explicit session termination.
type SessionService struct {
	Sessions session.Store
	Audit    *audit.Dispatcher
}

// Logout removes the session. Logging out an unknown or already expired
// session succeeds; the end state is the same either way.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}
	known := err == nil

	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		return err
	}

	if known {
		s.Audit.Record(audit.NewEvent(domain.AuditLogout, sess))
	}
	return nil
}
