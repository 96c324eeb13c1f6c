package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	deps []Pinger
}

// NewProbeHandler creates a new probe handler. Nil dependencies are ignored.
func NewProbeHandler(deps ...Pinger) *ProbeHandler {
	h := &ProbeHandler{}
	for _, d := range deps {
		if d != nil {
			h.deps = append(h.deps, d)
		}
	}
	return h
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK if every configured dependency answers a ping.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	for _, d := range h.deps {
		if err := d.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "error",
				"error":  "dependency unavailable",
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
