// Package registry provides the sources of indexable application routes.
package registry

import (
	"context"
	"fmt"

	"lingograde/internal/db"
	"lingograde/internal/models"
)

// Registry returns the canonical, ordered list of indexable routes.
type Registry interface {
	Routes(ctx context.Context) ([]models.Route, error)
}

// Func adapts a plain function to a Registry.
type Func func(ctx context.Context) ([]models.Route, error)

// Routes calls f.
func (f Func) Routes(ctx context.Context) ([]models.Route, error) {
	return f(ctx)
}

// Static serves a fixed list of routes.
type Static struct {
	routes []models.Route
}

// NewStatic creates a registry over a copy of routes.
func NewStatic(routes []models.Route) *Static {
	return &Static{routes: append([]models.Route(nil), routes...)}
}

// Routes returns a copy of the configured routes.
func (s *Static) Routes(context.Context) ([]models.Route, error) {
	return append([]models.Route(nil), s.routes...), nil
}

// Database serves the indexable routes stored in Postgres.
type Database struct {
	db *db.DB
}

// NewDatabase creates a registry backed by the sitemap_routes table.
func NewDatabase(database *db.DB) *Database {
	return &Database{db: database}
}

// Routes queries the indexable routes in sitemap order.
func (d *Database) Routes(ctx context.Context) ([]models.Route, error) {
	routes, err := d.db.ListIndexableRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list indexable routes: %w", err)
	}
	return routes, nil
}

// Merged concatenates several registries in order.
// A path already produced by an earlier source is dropped from later ones,
// so the result never contains duplicate paths.
type Merged struct {
	sources []Registry
}

// NewMerged creates a registry over sources, consulted in order.
func NewMerged(sources ...Registry) *Merged {
	return &Merged{sources: sources}
}

// NewSiteRegistry layers stored routes over the static list, so a stored route
// replaces a static route with the same path. stored may be nil.
func NewSiteRegistry(static, stored Registry) *Merged {
	if stored == nil {
		return NewMerged(static)
	}
	return NewMerged(stored, static)
}

// Routes fails if any source fails; a partial list is never returned.
func (m *Merged) Routes(ctx context.Context) ([]models.Route, error) {
	var out []models.Route
	seen := make(map[string]struct{})

	for i, src := range m.sources {
		routes, err := src.Routes(ctx)
		if err != nil {
			return nil, fmt.Errorf("route source %d: %w", i, err)
		}
		for _, r := range routes {
			if _, dup := seen[r.Path]; dup {
				continue
			}
			seen[r.Path] = struct{}{}
			out = append(out, r)
		}
	}
	return out, nil
}
