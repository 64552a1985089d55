package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheRepository is a string key/value store with expiry. callers own
// serialization
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

type redisCacheHandler struct {
	Client *redis.Client
}

func NewRedisCacheRepository(addr string) CacheRepository {
	return redisCacheHandler{
		Client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

func (h redisCacheHandler) Get(ctx context.Context, key string) (string, bool) {
	val, err := h.Client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (h redisCacheHandler) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := h.Client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}
	return nil
}

type memoryCacheEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryCacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

type memoryCacheHandler struct {
	Data      map[string]memoryCacheEntry
	ReadMutex *sync.RWMutex
	now       func() time.Time
}

// NewMemoryCacheRepository is an in-process cache for single instance
// deployments and tests
func NewMemoryCacheRepository() CacheRepository {
	return &memoryCacheHandler{
		Data:      map[string]memoryCacheEntry{},
		ReadMutex: &sync.RWMutex{},
		now:       time.Now,
	}
}

func (h *memoryCacheHandler) Get(ctx context.Context, key string) (string, bool) {
	h.ReadMutex.RLock()
	entry, ok := h.Data[key]
	h.ReadMutex.RUnlock()
	if !ok {
		return "", false
	}
	if entry.expired(h.now()) {
		h.ReadMutex.Lock()
		// may have been refreshed since the read lock was released
		if current, ok := h.Data[key]; ok && current.expired(h.now()) {
			delete(h.Data, key)
		}
		h.ReadMutex.Unlock()
		return "", false
	}
	return entry.value, true
}

// Set with ttl <= 0 never expires
func (h *memoryCacheHandler) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	entry := memoryCacheEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = h.now().Add(ttl)
	}
	h.ReadMutex.Lock()
	h.Data[key] = entry
	h.ReadMutex.Unlock()
	return nil
}
