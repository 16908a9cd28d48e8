package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rocketshop/internal/redisclient"
)

// RedisStore keeps JSON-encoded sessions in Redis with a sliding TTL
type RedisStore struct {
	client *redisclient.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(client *redisclient.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get loads and decodes a session
func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, found, err := r.client.LoadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &s, nil
}

// Save encodes the session and refreshes its TTL
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", s.ID, err)
	}
	return r.client.SaveSession(ctx, s.ID, data, r.ttl)
}

// Delete removes the session
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.DeleteSession(ctx, id)
}

// RedisLocker is a Locker shared by every instance using the same Redis
type RedisLocker struct {
	client *redisclient.Client
	ttl    time.Duration
	retry  time.Duration
}

// NewRedisLocker creates a locker whose locks expire after ttl
func NewRedisLocker(client *redisclient.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, retry: 20 * time.Millisecond}
}

// Lock polls until the session lock is acquired or ctx is done
func (l *RedisLocker) Lock(ctx context.Context, id string) (func(), error) {
	key := "session:" + id
	for {
		token, ok, err := l.client.AcquireLock(ctx, key, l.ttl)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire session lock: %w", err)
		}
		if ok {
			return func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_, _ = l.client.ReleaseLock(ctx, key, token)
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}
