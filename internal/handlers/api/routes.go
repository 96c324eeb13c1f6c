package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"lingograde/internal/db"
	"lingograde/internal/models"
	"lingograde/internal/validation"
)

// RouteStore persists sitemap routes. *db.DB satisfies it.
type RouteStore interface {
	ListRoutes(ctx context.Context) ([]models.StoredRoute, error)
	CreateRoute(ctx context.Context, route *models.StoredRoute) error
	DeleteRoute(ctx context.Context, id uuid.UUID) error
}

// CacheInvalidator drops cached route lists after a mutation.
type CacheInvalidator interface {
	Invalidate() error
}

// RouteHandler handles sitemap route CRUD operations via JSON API.
type RouteHandler struct {
	store RouteStore
	cache CacheInvalidator
}

// NewRouteHandler creates a new API route handler. cache may be nil.
func NewRouteHandler(store RouteStore, cache CacheInvalidator) *RouteHandler {
	return &RouteHandler{store: store, cache: cache}
}

// List returns every stored route.
func (h *RouteHandler) List(c fiber.Ctx) error {
	routes, err := h.store.ListRoutes(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch routes")
	}
	if routes == nil {
		routes = []models.StoredRoute{}
	}
	return jsonSuccess(c, routes)
}

// Create stores a new route.
func (h *RouteHandler) Create(c fiber.Ctx) error {
	var body struct {
		Path       string     `json:"path"`
		LastMod    *time.Time `json:"lastmod"`
		ChangeFreq string     `json:"changefreq"`
		Priority   *float64   `json:"priority"`
		Position   int        `json:"position"`
		Indexable  *bool      `json:"indexable"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := validation.ValidatePath(body.Path); err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	freq, ok := models.ParseChangeFreq(body.ChangeFreq)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "changefreq must be one of always, hourly, daily, weekly, monthly, yearly, never")
	}

	if body.Priority != nil {
		if _, ok := models.ClampPriority(*body.Priority); !ok {
			return jsonError(c, fiber.StatusBadRequest, "priority must be a number")
		}
	}

	indexable := true
	if body.Indexable != nil {
		indexable = *body.Indexable
	}

	route := &models.StoredRoute{
		Route: models.Route{
			Path:       body.Path,
			LastMod:    body.LastMod,
			ChangeFreq: freq,
			Priority:   body.Priority,
		},
		Position:  body.Position,
		Indexable: indexable,
	}

	if err := h.store.CreateRoute(c.Context(), route); err != nil {
		if errors.Is(err, db.ErrDuplicatePath) {
			return jsonError(c, fiber.StatusConflict, "a route with this path already exists")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to create route")
	}

	h.invalidate()
	return jsonStatus(c, fiber.StatusCreated, route)
}

// Delete removes a stored route.
func (h *RouteHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid route id")
	}

	if err := h.store.DeleteRoute(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrRouteNotFound) {
			return jsonError(c, fiber.StatusNotFound, "route not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete route")
	}

	h.invalidate()
	return jsonSuccess(c, fiber.Map{"id": id})
}

func (h *RouteHandler) invalidate() {
	if h.cache == nil {
		return
	}
	if err := h.cache.Invalidate(); err != nil {
		slog.Warn("failed to invalidate route cache", "error", err)
	}
}
