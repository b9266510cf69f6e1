package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/artpromedia/oru/internal/auth/domain"
	"github.com/artpromedia/oru/internal/auth/session"
	"github.com/artpromedia/oru/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newSession(expiresAt time.Time) domain.Session {
	return domain.Session{
		ID:          idx.New().String(),
		UserID:      "user-1",
		TenantID:    "tenant-a",
		UserType:    domain.UserTypeUser,
		Permissions: []string{"inventory.read"},
		Profile:     domain.Profile{Email: "alice@tenant-a.example"},
		MFAVerified: false,
		CreatedAt:   time.Now().UTC(),
		ExpiresAt:   expiresAt,
	}
}

func TestMemoryStoreCreateAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := session.NewMemoryStore()
	s := newSession(time.Now().UTC().Add(time.Hour))
	require.NoError(t, store.Create(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, s.UserID, got.UserID)
	require.False(t, got.MFAVerified)

	require.ErrorIs(t, store.Create(ctx, s), session.ErrAlreadyExists)

	_, err = store.Get(ctx, "missing")
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestMemoryStoreLazyEviction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := session.NewMemoryStore()
	now := time.Now().UTC()
	store.SetClock(func() time.Time { return now })

	s := newSession(now.Add(time.Hour))
	require.NoError(t, store.Create(ctx, s))

	// Advance past expiry: the next read both fails and removes the entry.
	now = now.Add(2 * time.Hour)
	_, err := store.Get(ctx, s.ID)
	require.ErrorIs(t, err, session.ErrNotFound)
	require.Equal(t, 0, store.Len())

	// A second read is still a plain not-found, not a double-delete error.
	_, err = store.Get(ctx, s.ID)
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestMemoryStoreTouchSlidesExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := session.NewMemoryStore()
	s := newSession(time.Now().UTC().Add(time.Hour))
	require.NoError(t, store.Create(ctx, s))

	later := time.Now().UTC().Add(8 * time.Hour)
	got, err := store.Touch(ctx, s.ID, later)
	require.NoError(t, err)
	require.Equal(t, later, got.ExpiresAt)

	got, err = store.Get(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, later, got.ExpiresAt)
}

func TestMemoryStoreMarkVerified(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := session.NewMemoryStore()
	s := newSession(time.Now().UTC().Add(time.Hour))
	require.NoError(t, store.Create(ctx, s))

	got, err := store.MarkVerified(ctx, s.ID)
	require.NoError(t, err)
	require.True(t, got.MFAVerified)

	got, err = store.Get(ctx, s.ID)
	require.NoError(t, err)
	require.True(t, got.MFAVerified)

	_, err = store.MarkVerified(ctx, "missing")
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestMemoryStoreDeleteIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := session.NewMemoryStore()
	s := newSession(time.Now().UTC().Add(time.Hour))
	require.NoError(t, store.Create(ctx, s))

	require.NoError(t, store.Delete(ctx, s.ID))
	require.NoError(t, store.Delete(ctx, s.ID))

	_, err := store.Get(ctx, s.ID)
	require.ErrorIs(t, err, session.ErrNotFound)
}

func TestMemoryStoreDeleteExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := session.NewMemoryStore()
	now := time.Now().UTC()
	store.SetClock(func() time.Time { return now })

	live := newSession(now.Add(time.Hour))
	stale1 := newSession(now.Add(time.Minute))
	stale2 := newSession(now.Add(time.Minute))
	for _, s := range []domain.Session{live, stale1, stale2} {
		require.NoError(t, store.Create(ctx, s))
	}

	now = now.Add(30 * time.Minute)
	removed, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, removed)
	require.Equal(t, 1, store.Len())

	_, err = store.Get(ctx, live.ID)
	require.NoError(t, err)
}
