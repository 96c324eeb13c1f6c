package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v3"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestProbes(t *testing.T) {
	tests := []struct {
		name       string
		deps       []Pinger
		path       string
		wantStatus int
	}{
		{"liveness always ok", []Pinger{stubPinger{err: errors.New("down")}}, "/healthz", fiber.StatusOK},
		{"readiness without deps", nil, "/readyz", fiber.StatusOK},
		{"readiness with healthy deps", []Pinger{stubPinger{}, stubPinger{}}, "/readyz", fiber.StatusOK},
		{"readiness with failing dep", []Pinger{stubPinger{}, stubPinger{err: errors.New("down")}}, "/readyz", fiber.StatusServiceUnavailable},
		{"nil deps ignored", []Pinger{nil}, "/readyz", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewProbeHandler(tt.deps...)
			app := fiber.New()
			app.Get("/healthz", h.Liveness)
			app.Get("/readyz", h.Readiness)

			req, _ := http.NewRequest(http.MethodGet, tt.path, nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
