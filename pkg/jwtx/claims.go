// Package jwtx wraps golang-jwt with the claim set and HS256 signing used
// by the platform's bearer tokens.
package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Profile is the display identity embedded in a token. Informational only;
// the session store remains the source of truth.
type Profile struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Claims are the bearer-token claims shared across platform services.
// Changes must stay additive to preserve compatibility.
type Claims struct {
	jwt.RegisteredClaims

	// SID is the session identifier the token was minted for.
	SID string `json:"sid,omitempty"`

	// TenantID scopes the identity; "PLATFORM" for the super-admin.
	TenantID string `json:"tenant_id,omitempty"`

	// UserType is one of "super-admin", "tenant-admin" or "user".
	UserType string `json:"user_type,omitempty"`

	// Permissions holds the capability strings granted to the session.
	Permissions []string `json:"permissions,omitempty"`

	// Profile is the display identity of the user.
	Profile Profile `json:"profile,omitempty"`
}

// NewClaims builds minimally-correct claims for a session token.
func NewClaims(
	subject, sid, tenantID, userType string,
	permissions []string,
	profile Profile,
	issuer string,
	ttl time.Duration,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		SID:         sid,
		TenantID:    tenantID,
		UserType:    userType,
		Permissions: permissions,
		Profile:     profile,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer claim against the expected value.
// An empty expected issuer enforces nothing.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token is inside its validity window.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrInvalidToken
	}
	return nil
}
