package jobs

import (
	"context"
	"log"
	"time"

	"lingograde/internal/models"
)

// Refresher reloads a cached route list from its source.
type Refresher interface {
	Refresh(ctx context.Context) ([]models.Route, error)
}

// CacheWarmer keeps the route cache populated so crawler requests rarely hit the source.
type CacheWarmer struct {
	cache    Refresher
	interval time.Duration
	timeout  time.Duration
}

// NewCacheWarmer creates a new cache warmer.
func NewCacheWarmer(cache Refresher, interval time.Duration) *CacheWarmer {
	return &CacheWarmer{
		cache:    cache,
		interval: interval,
		timeout:  30 * time.Second,
	}
}

// Start runs the refresh loop until ctx is cancelled.
func (w *CacheWarmer) Start(ctx context.Context) {
	log.Printf("Route cache warmer started (interval: %v)", w.interval)

	// Run immediately on start
	w.warm(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Route cache warmer stopped")
			return
		case <-ticker.C:
			w.warm(ctx)
		}
	}
}

func (w *CacheWarmer) warm(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	routes, err := w.cache.Refresh(ctx)
	if err != nil {
		log.Printf("Route cache warmer: refresh failed: %v", err)
		return
	}
	log.Printf("Route cache warmer: cached %d routes", len(routes))
}
