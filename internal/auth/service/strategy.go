package service

import (
	"context"
	"errors"
	"strings"

	"github.com/artpromedia/oru/internal/auth/domain"
	"github.com/artpromedia/oru/internal/auth/store"
	"github.com/artpromedia/oru/pkg/cryptox"
)

// AccountContext is the resolved identity a strategy hands back after
// verifying the password. It carries everything needed to mint a session.
type AccountContext struct {
	UserID      string
	TenantID    string
	UserType    domain.UserType
	Permissions []string
	Profile     domain.Profile
	MFASecret   *string
}

// authStrategy verifies a password against one class of account. The two
// implementations keep the platform super admin path and the tenant user
// path from leaking into each other.
type authStrategy interface {
	Resolve(ctx context.Context, email, password string) (AccountContext, error)
}

// SuperAdminConfig holds the platform operator account, which lives in
// configuration rather than any tenant database.
type SuperAdminConfig struct {
	Email        string
	UserID       string
	Name         string
	PasswordHash string
	MFASecret    string
}

type superAdminStrategy struct {
	cfg SuperAdminConfig
}

func (s *superAdminStrategy) Resolve(_ context.Context, email, password string) (AccountContext, error) {
	if s.cfg.PasswordHash == "" {
		return AccountContext{}, ErrNotConfigured
	}

	if err := cryptox.VerifyPassword(password, s.cfg.PasswordHash); err != nil {
		return AccountContext{}, ErrInvalidCredentials
	}

	// The super admin always goes through the second factor, even if the
	// secret is missing; verification then fails with a config error
	// instead of silently skipping MFA.
	secret := s.cfg.MFASecret

	return AccountContext{
		UserID:      s.cfg.UserID,
		TenantID:    domain.TenantPlatform,
		UserType:    domain.UserTypeSuperAdmin,
		Permissions: []string{domain.PermissionAll},
		Profile: domain.Profile{
			Email: s.cfg.Email,
			Name:  s.cfg.Name,
		},
		MFASecret: &secret,
	}, nil
}

type tenantUserStrategy struct {
	tenantID    string
	credentials store.Credentials
}

func (s *tenantUserStrategy) Resolve(ctx context.Context, email, password string) (AccountContext, error) {
	if strings.TrimSpace(s.tenantID) == "" {
		return AccountContext{}, ErrTenantRequired
	}

	cred, err := s.credentials.GetByEmail(ctx, s.tenantID, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AccountContext{}, ErrInvalidCredentials
		}
		return AccountContext{}, err
	}

	// Status is checked before the password so a locked account cannot be
	// probed for its credentials.
	if !cred.Active() {
		return AccountContext{}, ErrAccountInactive
	}

	if err := cryptox.VerifyPassword(password, cred.PasswordHash); err != nil {
		return AccountContext{}, ErrInvalidCredentials
	}

	// Only a usable secret should gate the session behind MFA.
	var secret *string
	if cred.MFAConfigured() {
		secret = cred.MFASecret
	}

	return AccountContext{
		UserID:      cred.ID,
		TenantID:    cred.TenantID,
		UserType:    cred.UserType(),
		Permissions: cred.Permissions,
		Profile: domain.Profile{
			Email: cred.Email,
			Name:  cred.Name,
		},
		MFASecret: secret,
	}, nil
}
