package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/artpromedia/oru/internal/auth/domain"
)

// loginVerified opens a fully authenticated session and returns its token.
func loginVerified(t *testing.T, env *testEnv) (string, string) {
	t.Helper()

	env.seedUser(t, userOpts{tenantID: "acme", email: "valid@acme.test"})

	res, err := env.login.Login(context.Background(), "valid@acme.test", testPassword, "acme")
	require.NoError(t, err)
	require.False(t, res.RequiresMFA)
	return res.Token, res.SessionID
}

func TestValidateAcceptsFreshToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token, sessionID := loginVerified(t, env)

	sess, err := env.validator.Validate(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	require.Equal(t, sessionID, sess.ID)
	require.True(t, sess.MFAVerified)
}

func TestValidateSlidesExpiry(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token, sessionID := loginVerified(t, env)

	before, err := env.sessions.Get(context.Background(), sessionID)
	require.NoError(t, err)

	later := time.Now().UTC().Add(1 * time.Hour)
	env.validator.SetClock(func() time.Time { return later })

	sess, err := env.validator.Validate(context.Background(), "Bearer "+token)
	require.NoError(t, err)
	require.True(t, sess.ExpiresAt.After(before.ExpiresAt))
	require.WithinDuration(t, later.Add(testTTL), sess.ExpiresAt, time.Second)
}

func TestValidateMissingOrMalformedHeader(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token, _ := loginVerified(t, env)

	for _, header := range []string{"", "   ", "Basic dXNlcjpwdw==", "Bearer", "Bearer   ", token} {
		_, err := env.validator.Validate(context.Background(), header)
		require.ErrorIs(t, err, ErrMissingToken, "header %q", header)
	}
}

func TestValidateBearerSchemeIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token, _ := loginVerified(t, env)

	_, err := env.validator.Validate(context.Background(), "bearer "+token)
	require.NoError(t, err)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token, _ := loginVerified(t, env)

	_, err := env.validator.Validate(context.Background(), "Bearer "+token+"x")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateDeletedSessionReportsExpired(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	token, sessionID := loginVerified(t, env)

	require.NoError(t, env.logout.Logout(context.Background(), sessionID))

	_, err := env.validator.Validate(context.Background(), "Bearer "+token)
	require.ErrorIs(t, err, ErrSessionExpired)
}

func TestValidatePendingSessionRequiresMFA(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedUser(t, userOpts{
		tenantID:  "acme",
		email:     "jo@acme.test",
		mfaSecret: strPtr(testTOTPSecret),
	})

	res, err := env.login.Login(context.Background(), "jo@acme.test", testPassword, "acme")
	require.NoError(t, err)
	require.True(t, res.RequiresMFA)

	// Mint a token for the pending session directly; even a validly signed
	// token must not pass while the MFA gate is open.
	sess, err := env.sessions.Get(context.Background(), res.SessionID)
	require.NoError(t, err)
	token, err := env.tokens.IssueFor(sess)
	require.NoError(t, err)

	_, err = env.validator.Validate(context.Background(), "Bearer "+token)
	require.ErrorIs(t, err, ErrMFARequired)
}

func TestValidateRejectsClaimSessionMismatch(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, sessionID := loginVerified(t, env)

	sess, err := env.sessions.Get(context.Background(), sessionID)
	require.NoError(t, err)

	// Token claims describe a different subject than the session it
	// references.
	forged := sess
	forged.UserID = "someone-else"
	token, err := env.tokens.IssueFor(forged)
	require.NoError(t, err)

	_, err = env.validator.Validate(context.Background(), "Bearer "+token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutIsIdempotent(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, sessionID := loginVerified(t, env)

	require.NoError(t, env.logout.Logout(context.Background(), sessionID))
	require.NoError(t, env.logout.Logout(context.Background(), sessionID))
	require.NoError(t, env.logout.Logout(context.Background(), "never-existed"))

	events := env.drainAudit()

	var logouts int
	for _, e := range events {
		if e.Action == domain.AuditLogout {
			logouts++
			require.Equal(t, sessionID, e.SessionID)
		}
	}
	require.Equal(t, 1, logouts)
}

func TestHousekeepingSweepsExpiredSessions(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	now := time.Now().UTC()
	expired := domain.Session{
		ID:        "expired-session",
		UserID:    "u1",
		TenantID:  "acme",
		UserType:  domain.UserTypeUser,
		CreatedAt: now.Add(-2 * testTTL),
		ExpiresAt: now.Add(-testTTL),
	}
	require.NoError(t, env.sessions.Create(context.Background(), expired))
	require.Equal(t, 1, env.sessions.Len())

	hk := NewHousekeepingService(env.sessions, env.login.Logger, time.Minute)
	hk.Start()
	defer hk.Stop()

	require.Eventually(t, func() bool {
		return env.sessions.Len() == 0
	}, time.Second, 10*time.Millisecond)
}
