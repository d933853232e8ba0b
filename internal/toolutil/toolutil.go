// Package toolutil provides shared helper functions for go_tube MCP tools.
package toolutil

import (
	"context"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
)

// NormLangs normalises a transcript language preference list: entries are
// trimmed, empties dropped, and an empty list becomes ["en"].
func NormLangs(langs []string) []string {
	out := make([]string, 0, len(langs))
	for _, l := range langs {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return []string{"en"}
	}
	return out
}

// CacheLoadJSON tries to load a cached value of type T from the engine cache.
// Returns the decoded value and true on hit; zero value and false on miss.
func CacheLoadJSON[T any](ctx context.Context, key string) (T, bool) {
	return engine.CacheLoadJSON[T](ctx, key)
}

// CacheStoreJSON marshals v and stores it in the engine cache.
func CacheStoreJSON[T any](ctx context.Context, key string, v T) {
	engine.CacheStoreJSON(ctx, key, v)
}
