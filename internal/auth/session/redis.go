package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/artpromedia/oru/internal/auth/domain"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in redis so multiple service instances share
// one view. Entries carry a TTL matching ExpiresAt, so redis evicts
// lapsed sessions natively and DeleteExpired has nothing to do.
type RedisStore struct {
	rdb *redis.Client
	now func() time.Time
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, now: time.Now}
}

func key(id string) string { return redisKeyPrefix + id }

func (r *RedisStore) Create(ctx context.Context, s domain.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session: create with non-future expiry")
	}

	encoded, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}

	ok, err := r.rdb.SetNX(ctx, key(s.ID), encoded, ttl).Result()
	if err != nil {
		return fmt.Errorf("session: create: %w", err)
	}
	if !ok {
		return ErrAlreadyExists
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (domain.Session, error) {
	data, err := r.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, ErrNotFound
		}
		return domain.Session{}, fmt.Errorf("session: get: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.Session{}, fmt.Errorf("session: decode: %w", err)
	}

	// TTL expiry is authoritative, but guard against clock drift between
	// the service and redis.
	if s.Expired(r.now().UTC()) {
		_ = r.rdb.Del(ctx, key(id)).Err()
		return domain.Session{}, ErrNotFound
	}
	return s, nil
}

func (r *RedisStore) Touch(ctx context.Context, id string, expiresAt time.Time) (domain.Session, error) {
	s, err := r.Get(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	s.ExpiresAt = expiresAt
	if err := r.put(ctx, s); err != nil {
		return domain.Session{}, err
	}
	return s, nil
}

func (r *RedisStore) MarkVerified(ctx context.Context, id string) (domain.Session, error) {
	s, err := r.Get(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	s.MFAVerified = true
	if err := r.put(ctx, s); err != nil {
		return domain.Session{}, err
	}
	return s, nil
}

func (r *RedisStore) put(ctx context.Context, s domain.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		_ = r.rdb.Del(ctx, key(s.ID)).Err()
		return ErrNotFound
	}

	encoded, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := r.rdb.Set(ctx, key(s.ID), encoded, ttl).Err(); err != nil {
		return fmt.Errorf("session: put: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: redis evicts by TTL.
func (r *RedisStore) DeleteExpired(context.Context) (int, error) { return 0, nil }

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *RedisStore) Close() error { return r.rdb.Close() }
