package handlers

import (
	"context"
	"errors"
	"fmt"

	"lingograde/internal/models"
	"lingograde/internal/registry"
	"lingograde/internal/validation"
)

// CacheControl is sent with every crawler-facing document.
const CacheControl = "public, max-age=3600, s-maxage=3600"

// ErrUpstreamFailure means the route registry failed or returned unusable data.
var ErrUpstreamFailure = errors.New("route registry failure")

// loadRoutes fetches routes and rejects lists that would produce an invalid sitemap.
func loadRoutes(ctx context.Context, reg registry.Registry) ([]models.Route, error) {
	routes, err := reg.Routes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
	}
	if err := validation.ValidateRoutes(routes); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
	}
	return routes, nil
}
