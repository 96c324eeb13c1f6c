package server

import (
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lingograde/internal/handlers"
	"lingograde/internal/handlers/api"
	"lingograde/internal/middleware"
	"lingograde/internal/registry"
)

// Deps are the collaborators the routes are wired to.
type Deps struct {
	// Registry is the route source served by the sitemap endpoints.
	Registry registry.Registry

	// Store enables the admin route API. Nil disables it.
	Store api.RouteStore

	// Cache is invalidated after admin mutations. May be nil.
	Cache api.CacheInvalidator

	// Verifier authenticates admin API callers. Nil disables the admin API.
	Verifier middleware.TokenVerifier

	// Probes are pinged by /readyz.
	Probes []handlers.Pinger

	// Gatherer backs /metrics. Defaults to the Prometheus default registry.
	Gatherer prometheus.Gatherer
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps Deps) {
	sitemapHandler := handlers.NewSitemapHandler(deps.Registry, s.Cfg)
	probeHandler := handlers.NewProbeHandler(deps.Probes...)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// Crawler-facing documents
	s.App.Get("/sitemap.xml", sitemapHandler.Sitemap)
	s.App.Get("/sitemap", sitemapHandler.Page)
	s.App.Get("/robots.txt", sitemapHandler.Robots)

	// Operational endpoints
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Admin route API - requires both a route store and OIDC
	if deps.Store == nil || deps.Verifier == nil {
		log.Println("Admin route API is disabled. Set DATABASE_URL, OIDC_ISSUER and OIDC_CLIENT_ID to enable.")
		return
	}

	authMiddleware := middleware.NewAuthMiddleware(deps.Verifier)
	routeHandler := api.NewRouteHandler(deps.Store, deps.Cache)

	admin := s.App.Group("/api/routes", authMiddleware.RequireBearer)
	admin.Get("/", routeHandler.List)
	admin.Post("/", routeHandler.Create)
	admin.Delete("/:id", routeHandler.Delete)
}
