package domain

import (
	"strings"
	"time"
)

// AccountStatus is the lifecycle state of a tenant account.
type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
	AccountLocked   AccountStatus = "locked"
)

// Credential is a tenant-scoped identity as resolved from the credential
// store. The auth subsystem reads these, it never mutates them beyond the
// last-login timestamp.
type Credential struct {
	ID           string
	TenantID     string
	Email        string
	Name         string
	PasswordHash string // bcrypt encoded
	Status       AccountStatus
	Role         string   // role name, e.g. "tenant-admin"
	Permissions  []string // capability strings, e.g. "inventory.read"
	MFASecret    *string  // base32 TOTP secret (nullable)
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active reports whether the account may authenticate. Status values are
// compared case-insensitively because upstream systems are inconsistent.
func (c Credential) Active() bool {
	return strings.EqualFold(string(c.Status), string(AccountActive))
}

// MFAConfigured reports whether the account has a TOTP secret enrolled.
// MFA is per-account, not global: accounts without a secret complete
// login in a single step.
func (c Credential) MFAConfigured() bool {
	return c.MFASecret != nil && *c.MFASecret != ""
}

// UserType maps the stored role name onto the session user type.
func (c Credential) UserType() UserType {
	if c.Role == string(UserTypeTenantAdmin) {
		return UserTypeTenantAdmin
	}
	return UserTypeUser
}
