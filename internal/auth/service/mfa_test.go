package service

import (
	"context"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"

	"github.com/artpromedia/oru/internal/auth/domain"
)

func totpCode(t *testing.T, secret string, at time.Time) string {
	t.Helper()

	code, err := totp.GenerateCode(secret, at)
	require.NoError(t, err)
	return code
}

func loginPending(t *testing.T, env *testEnv, email, password, tenantID string) string {
	t.Helper()

	res, err := env.login.Login(context.Background(), email, password, tenantID)
	require.NoError(t, err)
	require.True(t, res.RequiresMFA)
	return res.SessionID
}

func TestVerifyValidCodeIssuesToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cred := env.seedUser(t, userOpts{
		tenantID:  "acme",
		email:     "jo@acme.test",
		mfaSecret: strPtr(testTOTPSecret),
	})
	sessionID := loginPending(t, env, "jo@acme.test", testPassword, "acme")

	res, err := env.mfa.Verify(context.Background(), sessionID, totpCode(t, testTOTPSecret, time.Now()))
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.True(t, res.Session.MFAVerified)

	claims, err := env.tokens.Decode(res.Token)
	require.NoError(t, err)
	require.Equal(t, sessionID, claims.SID)
	require.Equal(t, cred.ID, claims.Subject)

	stored, err := env.creds.GetByID(context.Background(), cred.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)

	events := env.drainAudit()
	require.Len(t, events, 1)
	require.Equal(t, domain.AuditLoginSuccess, events[0].Action)
	require.Equal(t, sessionID, events[0].SessionID)
}

func TestVerifyRejectsWrongCode(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedUser(t, userOpts{
		tenantID:  "acme",
		email:     "jo@acme.test",
		mfaSecret: strPtr(testTOTPSecret),
	})
	sessionID := loginPending(t, env, "jo@acme.test", testPassword, "acme")

	_, err := env.mfa.Verify(context.Background(), sessionID, "000000")
	require.ErrorIs(t, err, ErrInvalidMFACode)

	// The session stays pending after a failed attempt.
	sess, err := env.sessions.Get(context.Background(), sessionID)
	require.NoError(t, err)
	require.False(t, sess.MFAVerified)
}

func TestVerifyAcceptsDriftWithinTwoSteps(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedUser(t, userOpts{
		tenantID:  "acme",
		email:     "jo@acme.test",
		mfaSecret: strPtr(testTOTPSecret),
	})

	now := time.Now()

	sessionID := loginPending(t, env, "jo@acme.test", testPassword, "acme")
	_, err := env.mfa.Verify(context.Background(), sessionID, totpCode(t, testTOTPSecret, now.Add(-60*time.Second)))
	require.NoError(t, err)

	sessionID = loginPending(t, env, "jo@acme.test", testPassword, "acme")
	_, err = env.mfa.Verify(context.Background(), sessionID, totpCode(t, testTOTPSecret, now.Add(-5*time.Minute)))
	require.ErrorIs(t, err, ErrInvalidMFACode)
}

func TestVerifyUnknownSession(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	_, err := env.mfa.Verify(context.Background(), "no-such-session", "123456")
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestVerifySuperAdminUsesConfiguredSecret(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	sessionID := loginPending(t, env, "root@platform.test", testAdminPass, "")

	res, err := env.mfa.Verify(context.Background(), sessionID, totpCode(t, env.superAdmin.MFASecret, time.Now()))
	require.NoError(t, err)
	require.Equal(t, domain.UserTypeSuperAdmin, res.Session.UserType)
	require.NotEmpty(t, res.Token)
}

func TestVerifySuperAdminWithoutSecretFailsClosed(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	sessionID := loginPending(t, env, "root@platform.test", testAdminPass, "")

	env.mfa.SuperAdmin.MFASecret = ""

	_, err := env.mfa.Verify(context.Background(), sessionID, "123456")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestVerifyAccountWithoutSecret(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cred := env.seedUser(t, userOpts{tenantID: "acme", email: "jo@acme.test"})

	// A pending session for an account with no enrolled authenticator
	// should not arise through login, but must still fail cleanly.
	now := time.Now().UTC()
	sess := domain.Session{
		ID:        "pending-without-secret",
		UserID:    cred.ID,
		TenantID:  "acme",
		UserType:  domain.UserTypeUser,
		CreatedAt: now,
		ExpiresAt: now.Add(testTTL),
	}
	require.NoError(t, env.sessions.Create(context.Background(), sess))

	_, err := env.mfa.Verify(context.Background(), sess.ID, "123456")
	require.ErrorIs(t, err, ErrMFANotConfigured)
}
