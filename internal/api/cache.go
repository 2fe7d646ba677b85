package api

import (
	"context" // Context for cache operations
	"time"    // Time durations

	"asset_inventory/internal/utils" // Cache implementation

	"github.com/sirupsen/logrus" // Structured logging
)

const (
	usersNamespace  = "admin:users" // Cached user list pages
	assetsNamespace = "assets"      // Cached asset list pages
)

// ListCache is a best-effort read-through cache for list pages. A nil cache disables it;
// cache failures are logged and never fail the request.
type ListCache struct {
	cache utils.Cache
	ttl   time.Duration
}

// NewListCache caches list pages in cache for ttl
func NewListCache(cache utils.Cache, ttl time.Duration) ListCache {
	return ListCache{cache: cache, ttl: ttl}
}

// load looks up the page for query and returns the key to save it under on a miss
func (l ListCache) load(ctx context.Context, namespace, query string, dest any) (string, bool) {
	if l.cache == nil {
		return "", false
	}
	gen, err := l.cache.Generation(ctx, namespace)
	if err != nil {
		logrus.WithFields(logrus.Fields{"namespace": namespace, "error": err.Error()}).Warn("Cache generation lookup failed")
		return "", false
	}
	key := utils.PageKey(namespace, gen, query)
	found, err := l.cache.Get(ctx, key, dest)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache read failed")
		return key, false
	}
	return key, found
}

// save stores a page under key, a no-op when load returned no key
func (l ListCache) save(ctx context.Context, key string, v any) {
	if l.cache == nil || key == "" {
		return
	}
	if err := l.cache.Set(ctx, key, v, l.ttl); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache write failed")
	}
}

// invalidate drops every cached page of namespace
func (l ListCache) invalidate(ctx context.Context, namespace string) {
	if l.cache == nil {
		return
	}
	if err := l.cache.Invalidate(ctx, namespace); err != nil {
		logrus.WithFields(logrus.Fields{"namespace": namespace, "error": err.Error()}).Warn("Cache invalidation failed")
	}
}
