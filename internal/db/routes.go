package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"lingograde/internal/models"
)

const routeColumns = `id, path, lastmod, changefreq, priority, position, indexable, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoute(row rowScanner) (*models.StoredRoute, error) {
	var (
		r       models.StoredRoute
		lastmod *time.Time
		freq    *string
	)
	err := row.Scan(
		&r.ID, &r.Path, &lastmod, &freq, &r.Priority,
		&r.Position, &r.Indexable, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.LastMod = lastmod
	if freq != nil {
		r.ChangeFreq = models.ChangeFreq(*freq)
	}
	return &r, nil
}

func nullableFreq(f models.ChangeFreq) *string {
	if !f.Valid() {
		return nil
	}
	s := string(f)
	return &s
}

func clampedPriority(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v, ok := models.ClampPriority(*p)
	if !ok {
		return nil
	}
	return &v
}

// CreateRoute inserts a new sitemap route.
func (d *DB) CreateRoute(ctx context.Context, route *models.StoredRoute) error {
	query := `
		INSERT INTO sitemap_routes (path, lastmod, changefreq, priority, position, indexable)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	route.Priority = clampedPriority(route.Priority)
	err := d.Pool.QueryRow(ctx, query,
		route.Path, route.LastMod, nullableFreq(route.ChangeFreq), route.Priority,
		route.Position, route.Indexable,
	).Scan(&route.ID, &route.CreatedAt, &route.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePath
		}
		return err
	}
	return nil
}

// GetRouteByID retrieves a stored route by ID.
func (d *DB) GetRouteByID(ctx context.Context, id uuid.UUID) (*models.StoredRoute, error) {
	query := `SELECT ` + routeColumns + ` FROM sitemap_routes WHERE id = $1`

	route, err := scanRoute(d.Pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRouteNotFound
	}
	if err != nil {
		return nil, err
	}
	return route, nil
}

// ListRoutes returns every stored route, indexable or not, in sitemap order.
func (d *DB) ListRoutes(ctx context.Context) ([]models.StoredRoute, error) {
	query := `SELECT ` + routeColumns + ` FROM sitemap_routes ORDER BY position ASC, path ASC`
	return d.queryRoutes(ctx, query)
}

// ListIndexableRoutes returns the routes that belong in the sitemap, in sitemap order.
func (d *DB) ListIndexableRoutes(ctx context.Context) ([]models.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM sitemap_routes WHERE indexable ORDER BY position ASC, path ASC`

	stored, err := d.queryRoutes(ctx, query)
	if err != nil {
		return nil, err
	}

	routes := make([]models.Route, 0, len(stored))
	for _, s := range stored {
		routes = append(routes, s.Route)
	}
	return routes, nil
}

// CountIndexableRoutes returns the number of routes that belong in the sitemap.
func (d *DB) CountIndexableRoutes(ctx context.Context) (int, error) {
	var n int
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM sitemap_routes WHERE indexable`).Scan(&n)
	return n, err
}

func (d *DB) queryRoutes(ctx context.Context, query string) ([]models.StoredRoute, error) {
	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []models.StoredRoute
	for rows.Next() {
		r, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, *r)
	}
	return routes, rows.Err()
}

// DeleteRoute deletes a stored route by ID.
func (d *DB) DeleteRoute(ctx context.Context, id uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM sitemap_routes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrRouteNotFound
	}
	return nil
}
