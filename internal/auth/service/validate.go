package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/artpromedia/oru/internal/auth/domain"
	"github.com/artpromedia/oru/internal/auth/session"
)

// ValidatorService authenticates bearer tokens on behalf of protected
// endpoints. A successful validation slides the session's expiry forward.
type ValidatorService struct {
	Sessions   session.Store
	Tokens     *TokenService
	SessionTTL time.Duration

	now func() time.Time
}

// SetClock overrides the time source. Intended for tests.
func (s *ValidatorService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *ValidatorService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

// Validate checks an Authorization header value end to end: bearer scheme,
// token signature, backing session, claim consistency and the MFA gate.
// It returns the refreshed session on success.
func (s *ValidatorService) Validate(ctx context.Context, authorization string) (domain.Session, error) {
	raw, err := bearerToken(authorization)
	if err != nil {
		return domain.Session{}, err
	}

	claims, err := s.Tokens.Decode(raw)
	if err != nil {
		return domain.Session{}, err
	}

	sess, err := s.Sessions.Get(ctx, claims.SID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return domain.Session{}, ErrSessionExpired
		}
		return domain.Session{}, err
	}

	// The token must describe the session it points at. A mismatch means
	// the token was minted for different state and cannot be trusted.
	if claims.Subject != sess.UserID ||
		claims.TenantID != sess.TenantID ||
		claims.UserType != string(sess.UserType) {
		return domain.Session{}, ErrInvalidToken
	}

	if !sess.MFAVerified {
		return domain.Session{}, ErrMFARequired
	}

	sess, err = s.Sessions.Touch(ctx, sess.ID, s.clock().Add(s.SessionTTL))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return domain.Session{}, ErrSessionExpired
		}
		return domain.Session{}, err
	}

	return sess, nil
}

func bearerToken(authorization string) (string, error) {
	authorization = strings.TrimSpace(authorization)
	if authorization == "" {
		return "", ErrMissingToken
	}

	const prefix = "Bearer "
	if len(authorization) <= len(prefix) || !strings.EqualFold(authorization[:len(prefix)], prefix) {
		return "", ErrMissingToken
	}

	token := strings.TrimSpace(authorization[len(prefix):])
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
