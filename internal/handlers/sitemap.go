package handlers

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"lingograde/internal/config"
	"lingograde/internal/metrics"
	"lingograde/internal/registry"
	"lingograde/internal/sitemap"
	"lingograde/internal/validation"
)

// SitemapHandler serves the crawler-facing documents built from the route registry.
type SitemapHandler struct {
	registry registry.Registry
	cfg      *config.Config
}

// NewSitemapHandler creates a new sitemap handler.
func NewSitemapHandler(routes registry.Registry, cfg *config.Config) *SitemapHandler {
	return &SitemapHandler{registry: routes, cfg: cfg}
}

// Sitemap handles GET /sitemap.xml.
// A registry failure or an invalid route list yields a 500; no partial document is served.
func (h *SitemapHandler) Sitemap(c fiber.Ctx) error {
	start := time.Now()

	routes, err := loadRoutes(c.Context(), h.registry)
	if err != nil {
		outcome := metrics.OutcomeUpstreamError
		if errors.Is(err, validation.ErrInvalidPath) || errors.Is(err, validation.ErrDuplicatePath) {
			outcome = metrics.OutcomeInvalidRoutes
		}
		metrics.ObserveSitemap(outcome, time.Since(start))
		slog.Error("sitemap: failed to load routes", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "sitemap is temporarily unavailable")
	}

	doc, err := sitemap.Generate(routes, h.cfg.SiteURL)
	if err != nil {
		metrics.ObserveSitemap(metrics.OutcomeInvalidInput, time.Since(start))
		slog.Error("sitemap: failed to render", "site_url", h.cfg.SiteURL, "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "sitemap is misconfigured")
	}

	metrics.ObserveSitemap(metrics.OutcomeOK, time.Since(start))

	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderCacheControl, CacheControl)
	return c.Status(fiber.StatusOK).SendString(doc)
}

// Page handles GET /sitemap, a human-readable list of the same URLs.
func (h *SitemapHandler) Page(c fiber.Ctx) error {
	routes, err := loadRoutes(c.Context(), h.registry)
	if err != nil {
		slog.Error("sitemap page: failed to load routes", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "sitemap is temporarily unavailable")
	}

	base, err := sitemap.NormalizeBaseURL(h.cfg.SiteURL)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "sitemap is misconfigured")
	}

	urls := make([]string, 0, len(routes))
	for _, r := range routes {
		urls = append(urls, sitemap.JoinURL(base, r.Path))
	}

	return c.Render("sitemap", MergeBranding(fiber.Map{
		"Title": "Sitemap",
		"URLs":  urls,
	}, h.cfg))
}

// Robots handles GET /robots.txt and points crawlers at the sitemap.
func (h *SitemapHandler) Robots(c fiber.Ctx) error {
	base, err := sitemap.NormalizeBaseURL(h.cfg.SiteURL)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "robots.txt is misconfigured")
	}

	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	for _, p := range h.cfg.RobotsDisallow {
		b.WriteString("Disallow: " + p + "\n")
	}
	b.WriteString("\nSitemap: " + sitemap.JoinURL(base, "/sitemap.xml") + "\n")

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Set(fiber.HeaderCacheControl, CacheControl)
	return c.SendString(b.String())
}
