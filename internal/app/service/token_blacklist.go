package service

import (
	"context"
	"sync"
	"time"

	"github.com/minhasantafonte/santafonte-backend/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
)

// TokenBlacklist remembers revoked tokens until they would have expired.
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type redisTokenBlacklist struct {
	client goredis.Cmdable
}

func NewRedisTokenBlacklist(client goredis.Cmdable) TokenBlacklist {
	return &redisTokenBlacklist{client: client}
}

func (b *redisTokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return redis.BlacklistToken(ctx, b.client, token, ttl)
}

func (b *redisTokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	return redis.IsTokenBlacklisted(ctx, b.client, token)
}

// memoryTokenBlacklist is used when Redis is disabled. Revocations are lost
// on restart.
type memoryTokenBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewMemoryTokenBlacklist() TokenBlacklist {
	return &memoryTokenBlacklist{revoked: make(map[string]time.Time)}
}

func (b *memoryTokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[token] = time.Now().Add(ttl)
	return nil
}

func (b *memoryTokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	until, ok := b.revoked[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(until) {
		delete(b.revoked, token)
		return false, nil
	}
	return true, nil
}
