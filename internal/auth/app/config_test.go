package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	require.Equal(t, "oru-auth", cfg.Issuer)
	require.Equal(t, 8*time.Hour, cfg.SessionTTL)
	require.Equal(t, "auth.db", cfg.DatabaseFile)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, 15*time.Minute, cfg.HousekeepingInterval)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("AUTH_ISSUER", "erp-auth")
	t.Setenv("AUTH_SESSION_HOURS", "2")
	t.Setenv("PORT", "9090")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "30s")
	t.Setenv("AUTH_REDIS_ADDR", "localhost:6379")

	cfg := LoadConfig()

	require.Equal(t, "erp-auth", cfg.Issuer)
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 30*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestValidateRequiresJWTSecret(t *testing.T) {
	cfg := Config{Env: "dev", SessionTTL: 8 * time.Hour}

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidateDevFallbacks(t *testing.T) {
	cfg := Config{
		Env:        "dev",
		JWTSecret:  "secret",
		SessionTTL: 8 * time.Hour,
	}

	require.NoError(t, cfg.Validate())
	require.Equal(t, devSuperAdminPasswordHash, cfg.SuperAdminPasswordHash)
	require.Equal(t, devSuperAdminMFASecret, cfg.SuperAdminMFASecret)
}

func TestValidateProdRequiresSecrets(t *testing.T) {
	cfg := Config{
		Env:        "prod",
		JWTSecret:  "secret",
		SessionTTL: 8 * time.Hour,
	}

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "SUPER_ADMIN_PASSWORD_HASH")

	cfg.SuperAdminPasswordHash = "$2a$10$notarealhashbutpresent"
	err = cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "SUPER_ADMIN_MFA_SECRET")

	cfg.SuperAdminMFASecret = "JBSWY3DPEHPK3PXP"
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsNonPositiveTTL(t *testing.T) {
	cfg := Config{Env: "dev", JWTSecret: "secret"}

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "AUTH_SESSION_HOURS")
}
