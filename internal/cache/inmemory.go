package cache

import (
	"context"
	"strings"
	"time"

	"github.com/flexprice/invoice-dashboard/internal/config"
	"github.com/flexprice/invoice-dashboard/internal/logger"
	"github.com/flexprice/invoice-dashboard/internal/metrics"
	goCache "github.com/patrickmn/go-cache"
)

// DefaultExpiration is used when the configuration sets no TTL
const DefaultExpiration = 5 * time.Minute

// DefaultCleanupInterval is how often expired items are removed from the cache
const DefaultCleanupInterval = 10 * time.Minute

// InMemoryCache implements Cache and ViewInvalidator using
// github.com/patrickmn/go-cache. When caching is disabled every read
// misses and writes are dropped.
type InMemoryCache struct {
	cache   *goCache.Cache
	enabled bool
	logger  *logger.Logger
}

var (
	_ Cache           = (*InMemoryCache)(nil)
	_ ViewInvalidator = (*InMemoryCache)(nil)
)

// NewInMemoryCache creates the cache from config
func NewInMemoryCache(cfg *config.Configuration, logger *logger.Logger) *InMemoryCache {
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = DefaultExpiration
	}

	logger.Infow("view cache initialized", "enabled", cfg.Cache.Enabled, "ttl", ttl)
	return &InMemoryCache{
		cache:   goCache.New(ttl, DefaultCleanupInterval),
		enabled: cfg.Cache.Enabled,
		logger:  logger,
	}
}

// Get retrieves a value from the cache
func (c *InMemoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	if !c.enabled {
		return nil, false
	}
	span := StartCacheSpan(ctx, "get", map[string]interface{}{"key": key})
	value, ok := c.cache.Get(key)
	FinishSpan(span, ok)
	return value, ok
}

// Set adds a value to the cache with the specified expiration
func (c *InMemoryCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) {
	if !c.enabled {
		return
	}
	if expiration == 0 {
		expiration = goCache.DefaultExpiration
	}
	c.cache.Set(key, value, expiration)
}

// Delete removes a key from the cache
func (c *InMemoryCache) Delete(_ context.Context, key string) {
	c.cache.Delete(key)
}

// DeleteByPrefix removes all keys with the given prefix
func (c *InMemoryCache) DeleteByPrefix(_ context.Context, prefix string) {
	for k := range c.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Delete(k)
		}
	}
}

// Flush removes all items from the cache
func (c *InMemoryCache) Flush(_ context.Context) {
	c.cache.Flush()
}

// InvalidateView drops the cached renders of the view at path
func (c *InMemoryCache) InvalidateView(ctx context.Context, path string) {
	c.DeleteByPrefix(ctx, PrefixView+path)
	metrics.ViewInvalidationsTotal.WithLabelValues(path).Inc()
	c.logger.Debugw("view invalidated", "path", path)
}
