package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Revoker remembers logged-out session ids until their tokens would have
// expired anyway.
type Revoker interface {
	Revoke(ctx context.Context, id string, until time.Time) error
	IsRevoked(ctx context.Context, id string) (bool, error)
}

// forever bounds entries for tokens issued without an expiry.
const forever = 365 * 24 * time.Hour

// RedisRevoker stores revoked ids as keys with a TTL.
type RedisRevoker struct {
	client *redis.Client
	prefix string
}

// NewRedisRevoker returns a Revoker backed by client.
func NewRedisRevoker(client *redis.Client) *RedisRevoker {
	return &RedisRevoker{client: client, prefix: "trip-planner:revoked:"}
}

// Revoke marks id as revoked until the given time.
func (r *RedisRevoker) Revoke(ctx context.Context, id string, until time.Time) error {
	ttl := forever
	if !until.IsZero() {
		ttl = time.Until(until)
		if ttl <= 0 {
			return nil
		}
	}
	if err := r.client.Set(ctx, r.prefix+id, 1, ttl).Err(); err != nil {
		return fmt.Errorf("auth.RedisRevoker.Revoke: %w", err)
	}
	return nil
}

// IsRevoked reports whether id has been revoked.
func (r *RedisRevoker) IsRevoked(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, r.prefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("auth.RedisRevoker.IsRevoked: %w", err)
	}
	return n > 0, nil
}

// MemoryRevoker is an in-process Revoker for single-instance deployments
// and tests. Entries are dropped lazily once expired.
type MemoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevoker returns an empty MemoryRevoker.
func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{revoked: make(map[string]time.Time), now: time.Now}
}

// Revoke marks id as revoked until the given time.
func (m *MemoryRevoker) Revoke(_ context.Context, id string, until time.Time) error {
	if until.IsZero() {
		until = m.now().Add(forever)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[id] = until
	return nil
}

// IsRevoked reports whether id has been revoked and not yet expired.
func (m *MemoryRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	until, ok := m.revoked[id]
	if !ok {
		return false, nil
	}
	if !m.now().Before(until) {
		delete(m.revoked, id)
		return false, nil
	}
	return true, nil
}
