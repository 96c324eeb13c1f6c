package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"lingograde/internal/models"
)

// DefaultCacheKey is the storage key holding the cached route list.
const DefaultCacheKey = "lingograde:sitemap:routes"

// Storage is the subset of a Fiber storage driver the cache needs.
// github.com/gofiber/storage/redis/v3 satisfies it.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Delete(key string) error
}

// Cached serves routes from a key/value store and falls back to its source on a miss.
type Cached struct {
	source  Registry
	storage Storage
	key     string
	ttl     time.Duration
}

// NewCached wraps source with a cache stored under DefaultCacheKey.
func NewCached(source Registry, storage Storage, ttl time.Duration) *Cached {
	return &Cached{
		source:  source,
		storage: storage,
		key:     DefaultCacheKey,
		ttl:     ttl,
	}
}

// Routes returns the cached list when present and decodable, otherwise loads from the source.
// Cache failures are logged and never fail the call.
func (c *Cached) Routes(ctx context.Context) ([]models.Route, error) {
	data, err := c.storage.Get(c.key)
	if err != nil {
		slog.Warn("route cache read failed", "key", c.key, "error", err)
	} else if len(data) > 0 {
		var routes []models.Route
		if err := json.Unmarshal(data, &routes); err == nil {
			return routes, nil
		}
		slog.Warn("route cache entry is corrupt, reloading", "key", c.key)
	}

	return c.load(ctx)
}

// Refresh reloads the routes from the source and stores them, ignoring any cached copy.
func (c *Cached) Refresh(ctx context.Context) ([]models.Route, error) {
	return c.load(ctx)
}

// Invalidate drops the cached route list.
func (c *Cached) Invalidate() error {
	if err := c.storage.Delete(c.key); err != nil {
		return fmt.Errorf("invalidate route cache: %w", err)
	}
	return nil
}

func (c *Cached) load(ctx context.Context) ([]models.Route, error) {
	routes, err := c.source.Routes(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(routes)
	if err != nil {
		slog.Error("failed to encode routes for cache", "error", err)
		return routes, nil
	}
	if err := c.storage.Set(c.key, data, c.ttl); err != nil {
		slog.Warn("route cache write failed", "key", c.key, "error", err)
	}
	return routes, nil
}
