// Package app wires configuration, storage, services and transport into a
// runnable auth service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/artpromedia/oru/internal/auth/audit"
	httpapi "github.com/artpromedia/oru/internal/auth/http"
	"github.com/artpromedia/oru/internal/auth/service"
	"github.com/artpromedia/oru/internal/auth/session"
	"github.com/artpromedia/oru/internal/auth/store"
	"github.com/artpromedia/oru/internal/auth/store/drivers/sqlite"
	"github.com/artpromedia/oru/pkg/jwtx"
	"github.com/artpromedia/oru/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	sessions session.Store
	signer   *jwtx.HS256
	audit    *audit.Dispatcher

	// Services
	loginService        *service.LoginService
	mfaService          *service.MFAService
	sessionService      *service.SessionService
	tokenService        *service.TokenService
	validatorService    *service.ValidatorService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	signer, err := jwtx.NewHS256(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.signer = signer

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSessions(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.audit = audit.NewDispatcher(&audit.StoreSink{Logs: app.db.AuditLogs()}, app.logger)

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	// Drain pending audit events before the database goes away.
	app.audit.Close()

	if err := app.sessions.Close(); err != nil {
		app.logger.Error("error closing session store", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase initializes the credential database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initSessions selects the session store driver. Redis makes sessions
// shared across horizontally scaled instances; the in-memory store is for
// single-instance deployments.
func (app *Application) initSessions() error {
	if app.cfg.RedisAddr == "" {
		app.sessions = session.NewMemoryStore()
		app.logger.Info("using in-memory session store")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: app.cfg.RedisAddr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	app.sessions = session.NewRedisStore(rdb)
	app.logger.Info("using redis session store", "addr", app.cfg.RedisAddr)
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	superAdmin := service.SuperAdminConfig{
		Email:        SuperAdminEmail,
		UserID:       SuperAdminID,
		Name:         SuperAdminName,
		PasswordHash: app.cfg.SuperAdminPasswordHash,
		MFASecret:    app.cfg.SuperAdminMFASecret,
	}

	app.tokenService = &service.TokenService{
		Sessions: app.sessions,
		Signer:   app.signer,
		Verifier: app.signer,
		Issuer:   app.cfg.Issuer,
		TTL:      app.cfg.SessionTTL,
	}

	app.loginService = &service.LoginService{
		Credentials: app.db.Credentials(),
		Sessions:    app.sessions,
		Tokens:      app.tokenService,
		Audit:       app.audit,
		SuperAdmin:  superAdmin,
		SessionTTL:  app.cfg.SessionTTL,
		Logger:      app.logger,
	}

	app.mfaService = &service.MFAService{
		Sessions:    app.sessions,
		Credentials: app.db.Credentials(),
		Tokens:      app.tokenService,
		Audit:       app.audit,
		SuperAdmin:  superAdmin,
		Logger:      app.logger,
	}

	app.sessionService = &service.SessionService{
		Sessions: app.sessions,
		Audit:    app.audit,
	}

	app.validatorService = &service.ValidatorService{
		Sessions:   app.sessions,
		Tokens:     app.tokenService,
		SessionTTL: app.cfg.SessionTTL,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.sessions,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.sessions,
		app.logger,
	)

	router.LoginService = app.loginService
	router.MFAService = app.mfaService
	router.SessionService = app.sessionService
	router.ValidatorService = app.validatorService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
