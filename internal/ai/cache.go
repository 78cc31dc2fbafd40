package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores completions for structured calls so repeated analysis or
// assessment of identical input skips the hosted model.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

func cacheKey(req Request) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%.2f", req.Model, req.System, req.Prompt, req.Temperature)))
	return "ai:" + hex.EncodeToString(sum[:])
}

type memoryEntry struct {
	value string
	exp   time.Time
}

type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: map[string]memoryEntry{},
		ttl:     ttl,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if time.Now().Before(e.exp) {
			return e.value, true
		}
		delete(c.entries, key)
	}
	return "", false
}

func (c *MemoryCache) Set(ctx context.Context, key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{
		value: value,
		exp:   time.Now().Add(c.ttl),
	}
}

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisCache{rdb: redis.NewClient(opts), ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	v, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

func (c *RedisCache) Set(ctx context.Context, key, value string) {
	_ = c.rdb.Set(ctx, key, value, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
