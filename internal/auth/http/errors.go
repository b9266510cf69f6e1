// Package http exposes the auth subsystem over JSON endpoints.
package http

import (
	"errors"
	"net/http"

	"github.com/artpromedia/oru/internal/auth/service"
	"github.com/artpromedia/oru/pkg/httpx"
)

var (
	errInvalidRequest = httpx.NewAPIError(http.StatusBadRequest,
		"invalid_request", "Invalid JSON body")
	errTenantRequired = httpx.NewAPIError(http.StatusBadRequest,
		"tenant_required", "A tenant must be specified for this account")
	errMFANotConfigured = httpx.NewAPIError(http.StatusBadRequest,
		"mfa_not_configured", "MFA is not configured for this account")

	// Wording is the same for unknown accounts and wrong passwords.
	errInvalidCredentials = httpx.NewAPIError(http.StatusUnauthorized,
		"invalid_credentials", "Invalid email or password")
	errInvalidMFACode = httpx.NewAPIError(http.StatusUnauthorized,
		"invalid_mfa_code", "Invalid verification code")
	errInvalidToken = httpx.NewAPIError(http.StatusUnauthorized,
		"invalid_token", "The token is invalid or has expired")
	errMissingToken = httpx.NewAPIError(http.StatusUnauthorized,
		"missing_token", "A bearer token is required")
	errSessionExpired = httpx.NewAPIError(http.StatusUnauthorized,
		"session_expired", "The session has expired")
	errMFARequired = httpx.NewAPIError(http.StatusUnauthorized,
		"mfa_required", "MFA verification is required before access is granted")

	errAccountInactive = httpx.NewAPIError(http.StatusForbidden,
		"account_inactive", "This account is not active")

	errInvalidSession = httpx.NewAPIError(http.StatusNotFound,
		"invalid_session", "The session does not exist or has expired")

	errServerError = httpx.NewAPIError(http.StatusInternalServerError,
		"server_error", "An internal error occurred")
)

// apiError maps service-layer sentinels onto wire errors. Anything
// unmapped is a server fault and must not leak details.
func apiError(err error) *httpx.APIError {
	switch {
	case errors.Is(err, service.ErrTenantRequired):
		return errTenantRequired
	case errors.Is(err, service.ErrInvalidCredentials):
		return errInvalidCredentials
	case errors.Is(err, service.ErrAccountInactive):
		return errAccountInactive
	case errors.Is(err, service.ErrInvalidSession):
		return errInvalidSession
	case errors.Is(err, service.ErrSessionExpired):
		return errSessionExpired
	case errors.Is(err, service.ErrMFARequired):
		return errMFARequired
	case errors.Is(err, service.ErrMFANotConfigured):
		return errMFANotConfigured
	case errors.Is(err, service.ErrInvalidMFACode):
		return errInvalidMFACode
	case errors.Is(err, service.ErrInvalidToken):
		return errInvalidToken
	case errors.Is(err, service.ErrMissingToken):
		return errMissingToken
	default:
		return errServerError
	}
}
