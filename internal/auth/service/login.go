package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/artpromedia/oru/internal/auth/audit"
	"github.com/artpromedia/oru/internal/auth/domain"
	"github.com/artpromedia/oru/internal/auth/session"
	"github.com/artpromedia/oru/internal/auth/store"
	"github.com/artpromedia/oru/pkg/idx"
)

// LoginService performs first-factor authentication and opens sessions.
type LoginService struct {
	Credentials store.Credentials
	Sessions    session.Store
	Tokens      *TokenService
	Audit       *audit.Dispatcher
	SuperAdmin  SuperAdminConfig
	SessionTTL  time.Duration
	Logger      *slog.Logger

	now func() time.Time
}

// SetClock overrides the time source. Intended for tests.
func (s *LoginService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *LoginService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

// Login verifies the password for the matching account class and creates a
// session. Accounts with an enrolled authenticator get back a pending
// session that must pass MFA verification before a token is issued;
// accounts without one receive their bearer token immediately.
func (s *LoginService) Login(ctx context.Context, email, password, tenantID string) (domain.LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.LoginResult{}, ErrInvalidCredentials
	}

	acct, err := s.strategyFor(email, tenantID).Resolve(ctx, email, password)
	if err != nil {
		return domain.LoginResult{}, err
	}

	now := s.clock()
	sess := domain.Session{
		ID:          idx.New().String(),
		UserID:      acct.UserID,
		TenantID:    acct.TenantID,
		UserType:    acct.UserType,
		Permissions: acct.Permissions,
		Profile:     acct.Profile,
		MFAVerified: acct.MFASecret == nil,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.SessionTTL),
	}

	if err := s.Sessions.Create(ctx, sess); err != nil {
		return domain.LoginResult{}, err
	}

	result := domain.LoginResult{
		SessionID:   sess.ID,
		ExpiresAt:   sess.ExpiresAt,
		RequiresMFA: !sess.MFAVerified,
	}

	if sess.MFAVerified {
		token, err := s.Tokens.IssueFor(sess)
		if err != nil {
			return domain.LoginResult{}, err
		}
		result.Token = token

		s.Audit.Record(audit.NewEvent(domain.AuditLoginSuccess, sess))
		s.recordLastLogin(ctx, sess)
	}

	return result, nil
}

func (s *LoginService) strategyFor(email, tenantID string) authStrategy {
	if strings.EqualFold(email, s.SuperAdmin.Email) {
		return &superAdminStrategy{cfg: s.SuperAdmin}
	}
	return &tenantUserStrategy{tenantID: strings.TrimSpace(tenantID), credentials: s.Credentials}
}

// recordLastLogin is best effort. The super admin lives outside the
// credential store, so it has nothing to update.
func (s *LoginService) recordLastLogin(ctx context.Context, sess domain.Session) {
	if sess.UserType == domain.UserTypeSuperAdmin {
		return
	}
	if err := s.Credentials.UpdateLastLogin(ctx, sess.UserID, s.clock()); err != nil {
		s.Logger.Warn("failed to update last login",
			slog.String("user_id", sess.UserID),
			slog.String("error", err.Error()),
		)
	}
}
