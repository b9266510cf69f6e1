package service

import (
	"context"
	"errors"
	"time"

	"github.com/artpromedia/oru/internal/auth/domain"
	"github.com/artpromedia/oru/internal/auth/session"
	"github.com/artpromedia/oru/pkg/jwtx"
)

// TokenService mints and decodes the signed bearer tokens that reference
// sessions. A token is only ever issued for a session that exists and has
// completed all required factors.
type TokenService struct {
	Sessions session.Store
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration

	now func() time.Time
}

// SetClock overrides the time source. Intended for tests.
func (s *TokenService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *TokenService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

// IssueFor signs a bearer token carrying the session's identity claims.
func (s *TokenService) IssueFor(sess domain.Session) (string, error) {
	claims := jwtx.NewClaims(
		sess.UserID,
		sess.ID,
		sess.TenantID,
		string(sess.UserType),
		sess.Permissions,
		jwtx.Profile{Email: sess.Profile.Email, Name: sess.Profile.Name},
		s.Issuer,
		s.TTL,
		s.clock(),
	)
	return s.Signer.Sign(claims)
}

// Issue looks up the session and signs a token for it.
func (s *TokenService) Issue(ctx context.Context, sessionID string) (string, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return "", ErrInvalidSession
		}
		return "", err
	}
	return s.IssueFor(sess)
}

// Decode verifies the token's signature, expiry and issuer and returns its
// claims. All verification failures collapse into ErrInvalidToken.
func (s *TokenService) Decode(raw string) (jwtx.Claims, error) {
	claims, err := s.Verifier.Verify(raw)
	if err != nil {
		return jwtx.Claims{}, ErrInvalidToken
	}
	if err := claims.ValidateIssuer(s.Issuer); err != nil {
		return jwtx.Claims{}, ErrInvalidToken
	}
	return claims, nil
}
