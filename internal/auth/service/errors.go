package service

import "errors"

var (
	// ErrInvalidCredentials covers unknown accounts and bad passwords so
	// responses cannot be used to enumerate users.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountInactive is returned when the account exists but its
	// status forbids login.
	ErrAccountInactive = errors.New("account is not active")

	// ErrTenantRequired is returned when a tenant login omits the tenant.
	ErrTenantRequired = errors.New("tenant is required")

	// ErrInvalidSession is returned when a referenced session does not exist.
	ErrInvalidSession = errors.New("invalid session")

	// ErrSessionExpired is returned when a token is valid but its backing
	// session is gone.
	ErrSessionExpired = errors.New("session expired")

	// ErrMFARequired is returned when a session has not completed the
	// second factor yet.
	ErrMFARequired = errors.New("mfa verification required")

	// ErrMFANotConfigured is returned when verification is attempted for
	// an account without an enrolled authenticator.
	ErrMFANotConfigured = errors.New("mfa is not configured for this account")

	// ErrInvalidMFACode is returned when the submitted TOTP code does not
	// match any accepted time step.
	ErrInvalidMFACode = errors.New("invalid mfa code")

	// ErrInvalidToken is returned for malformed, forged, expired, or
	// mismatched bearer tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingToken is returned when no bearer token was presented.
	ErrMissingToken = errors.New("missing bearer token")

	// ErrNotConfigured indicates a deployment problem, such as a missing
	// super admin secret.
	ErrNotConfigured = errors.New("authentication backend is not configured")
)
