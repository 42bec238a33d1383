package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shoplane-labs/catalog-discovery/internal/api/handlers"
	"github.com/shoplane-labs/catalog-discovery/internal/api/middleware"
	"github.com/shoplane-labs/catalog-discovery/internal/cache"
	"github.com/shoplane-labs/catalog-discovery/internal/config"
	"github.com/shoplane-labs/catalog-discovery/internal/health"
	"github.com/shoplane-labs/catalog-discovery/internal/metrics"
	repository "github.com/shoplane-labs/catalog-discovery/internal/repositories"
	service "github.com/shoplane-labs/catalog-discovery/internal/services"
	"github.com/shoplane-labs/catalog-discovery/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracing, err := telemetry.Setup(context.Background(), &cfg.Telemetry)
	if err != nil {
		slog.Error("Error setting up tracing", "error", err.Error())
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("Database connection closed")
		}
	}()

	if err := repository.RunMigrations(repos.DB); err != nil {
		slog.Error("Error running migrations", "error", err.Error())
		os.Exit(1)
	}

	// Redis setup; the cache is an optimization, the service runs without it
	var productCache cache.Cache

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache", "error", err.Error())
	} else {
		productCache = cache.NewRedisCache(redisClient, &cfg.Cache)
	}

	discoveryService := service.NewDiscoveryService(repos.Catalog, productCache, cfg)
	discoveryHandler := handlers.NewDiscoveryHandler(discoveryService)
	catalogService := service.NewCatalogService(repos.Catalog, cfg)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	storeCatalogService := service.NewStoreCatalogService(repos.Catalog, repos.Category, productCache, cfg)
	storeHandler := handlers.NewStoreHandler(storeCatalogService)

	healthHandler, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("Error setting up health checks", "error", err.Error())
		os.Exit(1)
	}

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/count", catalogHandler.CountProducts())
	routerMux.HandleFunc("GET /api/v1/products/trending", catalogHandler.TrendingProducts())
	routerMux.HandleFunc("GET /api/v1/products/latest", catalogHandler.LatestProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}/similar", discoveryHandler.SimilarProducts())
	routerMux.HandleFunc("GET /api/v1/stores/{id}/categories", storeHandler.Categories())
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "catalog-discovery")

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("Server is starting...", slog.String("address", cfg.Addr), slog.String("env", cfg.Env))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}

}
