package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"lingograde/internal/sitemap"
	"lingograde/internal/validation"
)

// DefaultSiteURL is the public origin used when no site URL is configured.
const DefaultSiteURL = "https://lingograde.com"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string

	// SiteURL is the public origin prepended to every route in the sitemap.
	// env: PUBLIC_SITE_URL, then VITE_PUBLIC_SITE_URL, default: DefaultSiteURL
	SiteURL string

	// Database (optional; the route registry falls back to static routes)
	DatabaseURL string

	// Redis (optional; enables the route cache and shared rate-limit storage)
	RedisURL string

	// Route registry
	RoutesFile          string        // env: ROUTES_FILE, default: "routes.yaml"
	SitemapCacheTTL     time.Duration // env: SITEMAP_CACHE_TTL, default: 1h
	SitemapWarmInterval time.Duration // env: SITEMAP_WARM_INTERVAL, default: 10m

	// robots.txt
	RobotsDisallow []string // env: ROBOTS_DISALLOW, comma-separated paths

	// OIDC (admin route API)
	OIDCIssuer   string
	OIDCClientID string

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Rate limiting
	RateLimitMax int // requests per minute per IP, env: RATE_LIMIT_MAX, default: 100

	// Site Branding
	SiteTitle string // env: SITE_TITLE, default: "LingoGrade"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cacheTTL, err := getDuration("SITEMAP_CACHE_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	warmInterval, err := getDuration("SITEMAP_WARM_INTERVAL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	rateLimit, err := getInt("RATE_LIMIT_MAX", 100)
	if err != nil {
		return nil, err
	}
	siteURL := getEnv("PUBLIC_SITE_URL", getEnv("VITE_PUBLIC_SITE_URL", DefaultSiteURL))
	if ok, msg := validation.ValidateURL(siteURL); !ok {
		return nil, fmt.Errorf("%w: invalid PUBLIC_SITE_URL %q: %s", sitemap.ErrInvalidInput, siteURL, msg)
	}

	return &Config{
		Env:                 getEnv("ENV", "development"),
		ServerAddr:          getEnv("SERVER_ADDR", ":3000"),
		SiteURL:             siteURL,
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		RedisURL:            getEnv("REDIS_URL", ""),
		RoutesFile:          getEnv("ROUTES_FILE", "routes.yaml"),
		SitemapCacheTTL:     cacheTTL,
		SitemapWarmInterval: warmInterval,
		RobotsDisallow:      splitList(getEnv("ROBOTS_DISALLOW", "/api/,/dashboard/")),
		OIDCIssuer:          getEnv("OIDC_ISSUER", ""),
		OIDCClientID:        getEnv("OIDC_CLIENT_ID", ""),
		CORSOrigins:         getEnv("CORS_ORIGINS", ""),
		RateLimitMax:        rateLimit,
		SiteTitle:           getEnv("SITE_TITLE", "LingoGrade"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// HasDatabase reports whether a Postgres route source is configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// HasRedis reports whether the Redis route cache is configured.
func (c *Config) HasRedis() bool {
	return c.RedisURL != ""
}

// IsAdminAPIEnabled returns true if OIDC is configured for the admin route API.
func (c *Config) IsAdminAPIEnabled() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != ""
}
