package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/artpromedia/oru/internal/auth/audit"
	"github.com/artpromedia/oru/internal/auth/domain"
	"github.com/artpromedia/oru/internal/auth/session"
	"github.com/artpromedia/oru/internal/auth/store"
)

// totpOpts accepts codes from the current 30 second step and two steps to
// either side, absorbing clock drift between server and authenticator app.
var totpOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      2,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// MFAService completes the second factor on a pending session and issues
// the bearer token.
type MFAService struct {
	Sessions    session.Store
	Credentials store.Credentials
	Tokens      *TokenService
	Audit       *audit.Dispatcher
	SuperAdmin  SuperAdminConfig
	Logger      *slog.Logger

	now func() time.Time
}

// SetClock overrides the time source. Intended for tests.
func (s *MFAService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *MFAService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

// Verify checks the TOTP code for the session's account, marks the session
// verified and returns the signed bearer token.
func (s *MFAService) Verify(ctx context.Context, sessionID, code string) (domain.AuthResult, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return domain.AuthResult{}, ErrInvalidSession
		}
		return domain.AuthResult{}, err
	}

	secret, err := s.secretFor(ctx, sess)
	if err != nil {
		return domain.AuthResult{}, err
	}

	ok, err := totp.ValidateCustom(code, secret, s.clock(), totpOpts)
	if err != nil || !ok {
		return domain.AuthResult{}, ErrInvalidMFACode
	}

	sess, err = s.Sessions.MarkVerified(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return domain.AuthResult{}, ErrInvalidSession
		}
		return domain.AuthResult{}, err
	}

	token, err := s.Tokens.IssueFor(sess)
	if err != nil {
		return domain.AuthResult{}, err
	}

	s.Audit.Record(audit.NewEvent(domain.AuditLoginSuccess, sess))
	s.recordLastLogin(ctx, sess)

	return domain.AuthResult{Token: token, Session: sess}, nil
}

func (s *MFAService) secretFor(ctx context.Context, sess domain.Session) (string, error) {
	if sess.UserType == domain.UserTypeSuperAdmin {
		if s.SuperAdmin.MFASecret == "" {
			return "", ErrNotConfigured
		}
		return s.SuperAdmin.MFASecret, nil
	}

	cred, err := s.Credentials.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidSession
		}
		return "", err
	}
	if cred.MFASecret == nil || *cred.MFASecret == "" {
		return "", ErrMFANotConfigured
	}
	return *cred.MFASecret, nil
}

func (s *MFAService) recordLastLogin(ctx context.Context, sess domain.Session) {
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
