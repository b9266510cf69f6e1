package app

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Platform super admin identity. The account lives in configuration, not
// in any tenant database.
const (
	SuperAdminEmail = "artpromedia@oonru.ai"
	SuperAdminID    = "OONRU-SA-001"
	SuperAdminName  = "Platform Administrator"
)

// Development-only fallbacks, applied when ENV is not prod and the
// corresponding secrets are unset. The password behind the hash is a
// well-known dev value; never deploy these.
const (
	devSuperAdminPasswordHash = "$2a$10$9OmXW/byLlTj1ZNF4RJajuHU37D8GAroVE0cXdrPQgQjJfXI0qZvW"
	devSuperAdminMFASecret    = "JBYUQRS6IFJCGQKXFJHDELTUNVUUWN3U"
)

type Config struct {
	Issuer                 string        // Issuer claim for tokens (default: oru-auth)
	JWTSecret              string        // Required: HMAC secret for token signing
	SuperAdminPasswordHash string        // bcrypt hash for the platform super admin
	SuperAdminMFASecret    string        // base32 TOTP secret for the platform super admin
	SessionTTL             time.Duration // Session lifetime, slides on activity (default: 8h)
	DatabaseFile           string        // Path to SQLite credential database (default: ./auth.db)
	RedisAddr              string        // Optional: redis address for shared session storage
	Env                    string        // Environment (dev, staging, prod) (default: dev)
	LogLevel               string        // Log level (debug, info, warn, error) (default: info)
	LogFormat              string        // Log format (json, text) (default: json)
	Port                   int           // HTTP server port (default: 8080)
	ShutdownGracePeriod    time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval   time.Duration // Expired-session sweep interval (default: 15m)
}

func LoadConfig() Config {
	sessionHours := getEnvIntOrDefault("AUTH_SESSION_HOURS", 8)

	return Config{
		Issuer:                 getEnvOrDefault("AUTH_ISSUER", "oru-auth"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		SuperAdminPasswordHash: os.Getenv("SUPER_ADMIN_PASSWORD_HASH"),
		SuperAdminMFASecret:    os.Getenv("SUPER_ADMIN_MFA_SECRET"),
		SessionTTL:             time.Duration(sessionHours) * time.Hour,
		DatabaseFile:           getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		RedisAddr:              os.Getenv("AUTH_REDIS_ADDR"),
		Env:                    getEnvOrDefault("ENV", "dev"),
		LogLevel:               getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:              getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                   getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:    getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval:   getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 15*time.Minute),
	}
}

// IsProd reports whether the service runs in a production environment.
func (c Config) IsProd() bool {
	return c.Env == "prod"
}

// Validate checks required settings and fills in dev fallbacks. In prod
// every secret must be provided explicitly.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("AUTH_SESSION_HOURS must be positive")
	}

	if c.IsProd() {
		if c.SuperAdminPasswordHash == "" {
			return fmt.Errorf("SUPER_ADMIN_PASSWORD_HASH is required in prod")
		}
		if c.SuperAdminMFASecret == "" {
			return fmt.Errorf("SUPER_ADMIN_MFA_SECRET is required in prod")
		}
		return nil
	}

	if c.SuperAdminPasswordHash == "" {
		c.SuperAdminPasswordHash = devSuperAdminPasswordHash
	}
	if c.SuperAdminMFASecret == "" {
		c.SuperAdminMFASecret = devSuperAdminMFASecret
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
