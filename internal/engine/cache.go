package engine

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Search results are cached in two tiers: L1 in memory, L2 Redis. Every
// Data API search burns 100 quota units out of the 10k/day default, so a
// repeated query must not reach the network; L2 keeps that true across
// restarts. Transcripts are never cached — repeated fetches must return
// exactly what upstream serves.
var resultCache *tieredCache

var (
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
)

type tieredCache struct {
	mem     sync.Map // key string → *cacheEntry
	rdb     *redis.Client
	ttl     time.Duration
	cap     int
	cleanup time.Duration
}

type cacheEntry struct {
	data    []byte
	expires time.Time
}

func (e *cacheEntry) live(now time.Time) bool { return now.Before(e.expires) }

// InitCache sets up the two-tier cache; call after Init. ttl <= 0 turns
// caching off entirely, an empty redisURL runs L1-only.
func InitCache(redisURL string, ttl time.Duration, maxEntries int, cleanupInterval time.Duration) {
	if ttl <= 0 {
		resultCache = nil
		slog.Info("cache: disabled")
		return
	}

	c := &tieredCache{ttl: ttl, cap: maxEntries, cleanup: cleanupInterval}
	if redisURL != "" {
		c.rdb = dialRedis(redisURL)
	}
	resultCache = c
	slog.Info("cache: initialized",
		slog.Duration("ttl", ttl), slog.Bool("redis", c.rdb != nil), slog.Int("max_entries", maxEntries))

	go c.sweepLoop()
}

// dialRedis connects and pings; any failure downgrades to L1-only.
func dialRedis(redisURL string) *redis.Client {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Warn("cache: invalid redis URL, L2 disabled", slog.Any("error", err))
		return nil
	}
	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("cache: redis unreachable, L2 disabled", slog.Any("error", err))
		return nil
	}
	slog.Info("cache: L2 redis connected", slog.String("addr", opts.Addr))
	return rdb
}

// CacheKey builds a deterministic key from parts.
func CacheKey(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("yt:%x", hash[:12])
}

// CacheGet tries L1, then L2. An L2 hit repopulates L1.
func CacheGet(ctx context.Context, key string) ([]byte, bool) {
	if resultCache == nil {
		cacheMisses.Add(1)
		return nil, false
	}

	if val, ok := resultCache.mem.Load(key); ok {
		entry := val.(*cacheEntry)
		if entry.live(time.Now()) {
			slog.Debug("cache: L1 hit", slog.String("key", key))
			cacheHits.Add(1)
			return entry.data, true
		}
		resultCache.mem.Delete(key)
	}

	if resultCache.rdb != nil {
		if data, err := resultCache.rdb.Get(ctx, key).Bytes(); err == nil {
			slog.Debug("cache: L2 hit", slog.String("key", key))
			cacheHits.Add(1)
			resultCache.mem.Store(key, &cacheEntry{data: data, expires: time.Now().Add(resultCache.ttl)})
			return data, true
		}
	}

	cacheMisses.Add(1)
	return nil, false
}

// CacheSet stores data in both tiers.
func CacheSet(ctx context.Context, key string, data []byte) {
	if resultCache == nil {
		return
	}

	resultCache.makeRoom()
	resultCache.mem.Store(key, &cacheEntry{data: data, expires: time.Now().Add(resultCache.ttl)})

	if resultCache.rdb != nil {
		if err := resultCache.rdb.Set(ctx, key, data, resultCache.ttl).Err(); err != nil {
			slog.Debug("cache: L2 set failed", slog.Any("error", err))
		}
	}
}

// CacheLoadJSON loads and decodes a cached value of type T. A decode
// failure counts as a miss; the entry will simply be overwritten.
func CacheLoadJSON[T any](ctx context.Context, key string) (T, bool) {
	var out T
	data, ok := CacheGet(ctx, key)
	if !ok || json.Unmarshal(data, &out) != nil {
		var zero T
		return zero, false
	}
	return out, true
}

// CacheStoreJSON marshals v and stores it under key.
func CacheStoreJSON[T any](ctx context.Context, key string, v T) {
	if data, err := json.Marshal(v); err == nil {
		CacheSet(ctx, key, data)
	}
}

// CacheStats returns the hit/miss counters.
func CacheStats() (hits, misses int64) {
	return cacheHits.Load(), cacheMisses.Load()
}

// makeRoom drops entries when L1 is at capacity: expired ones go first,
// then the ones closest to expiry (expiry order is insertion order under a
// fixed TTL).
func (c *tieredCache) makeRoom() {
	if c.cap <= 0 {
		return
	}

	type aged struct {
		key     any
		expires time.Time
	}
	now := time.Now()
	var entries []aged
	c.mem.Range(func(key, val any) bool {
		entry := val.(*cacheEntry)
		if !entry.live(now) {
			c.mem.Delete(key)
			return true
		}
		entries = append(entries, aged{key: key, expires: entry.expires})
		return true
	})
	if len(entries) < c.cap {
		return
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].expires.Before(entries[j].expires) })
	for i := 0; i <= len(entries)-c.cap; i++ {
		c.mem.Delete(entries[i].key)
	}
}

// sweepLoop drops expired L1 entries in the background.
func (c *tieredCache) sweepLoop() {
	interval := c.cleanup
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		c.mem.Range(func(key, val any) bool {
			if !val.(*cacheEntry).live(now) {
				c.mem.Delete(key)
			}
			return true
		})
	}
}
