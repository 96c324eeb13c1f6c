package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"lingograde/internal/registry"
)

// Sitemap render outcomes.
const (
	OutcomeOK            = "ok"
	OutcomeUpstreamError = "upstream_error"
	OutcomeInvalidRoutes = "invalid_routes"
	OutcomeInvalidInput  = "invalid_input"
)

var (
	routesDesc = prometheus.NewDesc(
		"lingograde_sitemap_routes",
		"Number of indexable routes currently returned by the route registry",
		nil,
		nil,
	)

	sitemapRenders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lingograde_sitemap_renders_total",
			Help: "Total sitemap requests by outcome",
		},
		[]string{"outcome"},
	)

	sitemapDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lingograde_sitemap_render_duration_seconds",
			Help:    "Time spent loading routes and rendering the sitemap",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// RouteCollector is a custom Prometheus collector that asks the route registry
// for its current route count on each scrape.
type RouteCollector struct {
	registry registry.Registry
	timeout  time.Duration
}

// Describe sends the metric descriptor to the channel.
func (c *RouteCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- routesDesc
}

// Collect loads the routes and emits their count as a gauge.
func (c *RouteCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	routes, err := c.registry.Routes(ctx)
	if err != nil {
		slog.Error("failed to collect sitemap route metrics", "error", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(routesDesc, prometheus.GaugeValue, float64(len(routes)))
}

var initOnce sync.Once

// Init registers the sitemap metrics and the route collector with reg.
// Must be called once at startup; later calls are no-ops.
func Init(reg prometheus.Registerer, routes registry.Registry) {
	initOnce.Do(func() {
		reg.MustRegister(
			sitemapRenders,
			sitemapDuration,
			&RouteCollector{registry: routes, timeout: 5 * time.Second},
		)
	})
}

// ObserveSitemap records one sitemap request outcome and how long it took.
func ObserveSitemap(outcome string, elapsed time.Duration) {
	sitemapRenders.WithLabelValues(outcome).Inc()
	sitemapDuration.Observe(elapsed.Seconds())
}
