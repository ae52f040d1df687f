package configurator

import (
	"context"
	"sync"
	"time"

	"github.com/minhasantafonte/santafonte-backend/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
)

// Store keeps one wizard per visitor key. Load returns a fresh wizard when
// nothing was saved yet.
type Store interface {
	Load(ctx context.Context, key string) (*Wizard, error)
	Save(ctx context.Context, key string, w *Wizard) error
}

type MemoryStore struct {
	mu      sync.Mutex
	wizards map[string]Wizard
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{wizards: make(map[string]Wizard)}
}

func (s *MemoryStore) Load(ctx context.Context, key string) (*Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wizards[key]
	if !ok {
		return New(), nil
	}
	return &w, nil
}

func (s *MemoryStore) Save(ctx context.Context, key string, w *Wizard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wizards[key] = *w
	return nil
}

// RedisStore keeps wizard state under "customizer:<key>". Abandoned
// wizards expire after ttl.
type RedisStore struct {
	client goredis.Cmdable
	ttl    time.Duration
}

func NewRedisStore(client goredis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, key string) (*Wizard, error) {
	w := New()
	found, err := redis.GetJSON(ctx, s.client, "customizer:"+key, w)
	if err != nil {
		return nil, err
	}
	if !found {
		return New(), nil
	}
	return w, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, w *Wizard) error {
	return redis.SetJSON(ctx, s.client, "customizer:"+key, w, s.ttl)
}
