package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/artpromedia/oru/internal/auth/audit"
	"github.com/artpromedia/oru/internal/auth/domain"
	"github.com/artpromedia/oru/internal/auth/session"
	"github.com/artpromedia/oru/internal/auth/store"
	"github.com/artpromedia/oru/pkg/cryptox"
	"github.com/artpromedia/oru/pkg/idx"
	"github.com/artpromedia/oru/pkg/jwtx"
)

const (
	testPassword   = "correct-horse-battery"
	testAdminPass  = "root-of-all-tenants"
	testTOTPSecret = "JBSWY3DPEHPK3PXP"
	testIssuer     = "oru-auth"
	testTTL        = 8 * time.Hour
)

var (
	hashOnce      sync.Once
	passwordHash  string
	adminPassHash string
)

func testHashes(t *testing.T) (user, admin string) {
	t.Helper()

	hashOnce.Do(func() {
		var err error
		passwordHash, err = cryptox.HashPassword(testPassword)
		if err != nil {
			panic(err)
		}
		adminPassHash, err = cryptox.HashPassword(testAdminPass)
		if err != nil {
			panic(err)
		}
	})
	return passwordHash, adminPassHash
}

// fakeCredentials is an in-memory store.Credentials for service tests.
type fakeCredentials struct {
	mu   sync.Mutex
	byID map[string]domain.Credential
}

var _ store.Credentials = (*fakeCredentials)(nil)

func newFakeCredentials() *fakeCredentials {
	return &fakeCredentials{byID: make(map[string]domain.Credential)}
}

func (f *fakeCredentials) GetByEmail(_ context.Context, tenantID, email string) (domain.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.byID {
		if c.TenantID == tenantID && strings.EqualFold(c.Email, email) {
			return c, nil
		}
	}
	return domain.Credential{}, store.ErrNotFound
}

func (f *fakeCredentials) GetByID(_ context.Context, id string) (domain.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.byID[id]
	if !ok {
		return domain.Credential{}, store.ErrNotFound
	}
	return c, nil
}

func (f *fakeCredentials) Create(_ context.Context, c domain.Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.byID[c.ID]; ok {
		return store.ErrAlreadyExists
	}
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCredentials) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.byID[id]
	if !ok {
		return store.ErrNotFound
	}
	c.LastLoginAt = &at
	f.byID[id] = c
	return nil
}

// recordingSink captures dispatched audit events for assertions.
type recordingSink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (s *recordingSink) Record(_ context.Context, e domain.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *recordingSink) recorded() []domain.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuditEvent(nil), s.events...)
}

type testEnv struct {
	creds      *fakeCredentials
	sessions   *session.MemoryStore
	sink       *recordingSink
	dispatcher *audit.Dispatcher

	tokens    *TokenService
	login     *LoginService
	mfa       *MFAService
	validator *ValidatorService
	logout    *SessionService

	superAdmin SuperAdminConfig
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	_, adminHash := testHashes(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	creds := newFakeCredentials()
	sessions := session.NewMemoryStore()
	sink := &recordingSink{}
	dispatcher := audit.NewDispatcher(sink, logger)
	t.Cleanup(dispatcher.Close)

	signer, err := jwtx.NewHS256("service-test-secret")
	require.NoError(t, err)

	superAdmin := SuperAdminConfig{
		Email:        "root@platform.test",
		UserID:       "SA-001",
		Name:         "Platform Root",
		PasswordHash: adminHash,
		MFASecret:    testTOTPSecret,
	}

	tokens := &TokenService{
		Sessions: sessions,
		Signer:   signer,
		Verifier: signer,
		Issuer:   testIssuer,
		TTL:      testTTL,
	}

	return &testEnv{
		creds:      creds,
		sessions:   sessions,
		sink:       sink,
		dispatcher: dispatcher,
		tokens:     tokens,
		login: &LoginService{
			Credentials: creds,
			Sessions:    sessions,
			Tokens:      tokens,
			Audit:       dispatcher,
			SuperAdmin:  superAdmin,
			SessionTTL:  testTTL,
			Logger:      logger,
		},
		mfa: &MFAService{
			Sessions:    sessions,
			Credentials: creds,
			Tokens:      tokens,
			Audit:       dispatcher,
			SuperAdmin:  superAdmin,
			Logger:      logger,
		},
		validator: &ValidatorService{
			Sessions:   sessions,
			Tokens:     tokens,
			SessionTTL: testTTL,
		},
		logout: &SessionService{
			Sessions: sessions,
			Audit:    dispatcher,
		},
		superAdmin: superAdmin,
	}
}

type userOpts struct {
	tenantID  string
	email     string
	status    domain.AccountStatus
	role      string
	mfaSecret *string
}

func (e *testEnv) seedUser(t *testing.T, opts userOpts) domain.Credential {
	t.Helper()

	userHash, _ := testHashes(t)

	if opts.status == "" {
		opts.status = domain.AccountActive
	}
	if opts.role == "" {
		opts.role = "user"
	}

	cred := domain.Credential{
		ID:           idx.New().String(),
		TenantID:     opts.tenantID,
		Email:        opts.email,
		Name:         "Test User",
		PasswordHash: userHash,
		Status:       opts.status,
		Role:         opts.role,
		Permissions:  []string{"inventory.read"},
		MFASecret:    opts.mfaSecret,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, e.creds.Create(context.Background(), cred))
	return cred
}

// drainAudit flushes the dispatcher so recorded events can be asserted.
func (e *testEnv) drainAudit() []domain.AuditEvent {
	e.dispatcher.Close()
	return e.sink.recorded()
}

func strPtr(s string) *string { return &s }
