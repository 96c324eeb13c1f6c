package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/storage/redis/v3"
	"github.com/prometheus/client_golang/prometheus"

	"lingograde/internal/config"
	"lingograde/internal/db"
	"lingograde/internal/handlers"
	"lingograde/internal/jobs"
	"lingograde/internal/metrics"
	"lingograde/internal/middleware"
	"lingograde/internal/registry"
	"lingograde/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if !cfg.IsDev() {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	// Static routes from the routes file, or the built-in marketing pages
	staticRoutes, err := config.LoadRoutesFile(cfg.RoutesFile)
	if err != nil {
		log.Fatalf("Failed to load routes file %s: %v", cfg.RoutesFile, err)
	}
	if staticRoutes == nil {
		log.Printf("No routes file at %s, using built-in routes", cfg.RoutesFile)
		staticRoutes = config.DefaultRoutes()
	}

	var stored registry.Registry
	deps := server.Deps{}

	// Database - optional additional route source and admin API store
	if cfg.HasDatabase() {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations completed successfully")

		if cfg.IsDev() {
			if err := database.SeedRoutes(ctx, staticRoutes); err != nil {
				log.Printf("Warning: Failed to seed routes: %v", err)
			}
		}

		stored = registry.NewDatabase(database)
		deps.Store = database
		deps.Probes = append(deps.Probes, handlers.Pinger(database))
	} else {
		log.Println("DATABASE_URL not set, serving static routes only")
	}

	var routes registry.Registry = registry.NewSiteRegistry(registry.NewStatic(staticRoutes), stored)

	// Redis - route cache and shared rate-limit counters
	var limiterStorage fiber.Storage
	if cfg.HasRedis() {
		store := redis.New(redis.Config{URL: cfg.RedisURL})
		defer store.Close()
		limiterStorage = store

		cached := registry.NewCached(routes, store, cfg.SitemapCacheTTL)
		routes = cached
		deps.Cache = cached

		warmer := jobs.NewCacheWarmer(cached, cfg.SitemapWarmInterval)
		go warmer.Start(ctx)
	} else {
		log.Println("REDIS_URL not set, route cache disabled")
	}
	deps.Registry = routes

	metrics.Init(prometheus.DefaultRegisterer, routes)

	// OIDC - admin route API
	if cfg.IsAdminAPIEnabled() {
		verifier, err := middleware.NewOIDCVerifier(ctx, cfg.OIDCIssuer, cfg.OIDCClientID)
		if err != nil {
			log.Printf("Warning: Failed to initialize OIDC: %v", err)
		} else {
			deps.Verifier = verifier
		}
	}

	srv := server.New(cfg, limiterStorage)
	srv.RegisterRoutes(deps)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s (site URL %s)", cfg.ServerAddr, cfg.SiteURL)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
