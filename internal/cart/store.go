package cart

import (
	"context"
	"sync"

	"github.com/minhasantafonte/santafonte-backend/internal/app/model"
	"github.com/minhasantafonte/santafonte-backend/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
)

// Store persists the full line list per visitor key. Load returns an empty
// list for unknown keys.
type Store interface {
	Load(ctx context.Context, key string) ([]model.CartItem, error)
	Save(ctx context.Context, key string, items []model.CartItem) error
}

type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]model.CartItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]model.CartItem)}
}

func (s *MemoryStore) Load(ctx context.Context, key string) ([]model.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.carts[key]
	out := make([]model.CartItem, len(items))
	copy(out, items)
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, key string, items []model.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]model.CartItem, len(items))
	copy(stored, items)
	s.carts[key] = stored
	return nil
}

// RedisStore keeps each cart as one JSON value under "cart:<key>" with no
// expiry.
type RedisStore struct {
	client goredis.Cmdable
}

func NewRedisStore(client goredis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context, key string) ([]model.CartItem, error) {
	var items []model.CartItem
	found, err := redis.GetJSON(ctx, s.client, "cart:"+key, &items)
	if err != nil {
		return nil, err
	}
	if !found || items == nil {
		return []model.CartItem{}, nil
	}
	return items, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, items []model.CartItem) error {
	if items == nil {
		items = []model.CartItem{}
	}
	return redis.SetJSON(ctx, s.client, "cart:"+key, items, 0)
}
