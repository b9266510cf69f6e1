package domain

import "time"

// UserType classifies the identity behind a session.
type UserType string

const (
	UserTypeSuperAdmin  UserType = "super-admin"
	UserTypeTenantAdmin UserType = "tenant-admin"
	UserTypeUser        UserType = "user"
)

// TenantPlatform is the tenant scope of the platform super-admin identity.
const TenantPlatform = "PLATFORM"

// PermissionAll grants every capability. Only the super-admin carries it.
const PermissionAll = "*"

// Profile is the display identity attached to a session. Informational
// only, never authoritative.
type Profile struct {
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// Session is the unit of authenticated state. It is owned by the session
// store: created at login, flipped to verified by the MFA challenge,
// extended by request validation and destroyed by logout or expiry.
type Session struct {
	ID          string   `json:"sessionId"`
	UserID      string   `json:"userId"`
	TenantID    string   `json:"tenantId"`
	UserType    UserType `json:"userType"`
	Permissions []string `json:"permissions"`
	Profile     Profile  `json:"profile"`

	// MFAVerified gates token usage. It transitions false to true at most
	// once; a pending session can exist but cannot pass validation.
	MFAVerified bool `json:"mfaVerified"`

	CreatedAt time.Time `json:"createdAt"`

	// ExpiresAt slides forward on every successfully validated request.
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session has lapsed at the given instant.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// LoginResult is returned by the login flow. Token is only set when the
// account has no MFA secret and the login completed in one step.
type LoginResult struct {
	SessionID   string    `json:"sessionId"`
	ExpiresAt   time.Time `json:"expiresAt"`
	RequiresMFA bool      `json:"requiresMfa"`
	Token       string    `json:"token,omitempty"`
}

// AuthResult is returned once a session is fully verified.
type AuthResult struct {
	Token   string  `json:"token"`
	Session Session `json:"session"`
}
