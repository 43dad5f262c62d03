package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/stocktrack/docs/swagger"
	"github.com/ghuser/stocktrack/pkg/app"
	"github.com/ghuser/stocktrack/pkg/config"
	"github.com/ghuser/stocktrack/pkg/database"
	"github.com/ghuser/stocktrack/pkg/events"
	"github.com/ghuser/stocktrack/pkg/httpx"
	"github.com/ghuser/stocktrack/pkg/kvstore"
	"github.com/ghuser/stocktrack/pkg/logger"
	"github.com/ghuser/stocktrack/pkg/telemetry"
	inventoryApi "github.com/ghuser/stocktrack/services/inventory/application/api"
	productApi "github.com/ghuser/stocktrack/services/product/application/api"
	"github.com/ghuser/stocktrack/services/product/domain/models"
	"github.com/ghuser/stocktrack/services/product/domain/repositories"
	productStore "github.com/ghuser/stocktrack/services/product/infrastructure/store"
)

// @title			Stocktrack API
// @version		1.0
// @description	Workshop inventory: items, stock bookings, storage locations and a demo product catalogue.
// @license.name	MIT
// @license.url	https://opensource.org/licenses/MIT
// @host			localhost:8080
// @BasePath		/api
// @schemes		http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting is optional: log and continue on failure
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, products, err := newProductStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to setup product store", "error", err, "backend", cfg.ProductStore)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		Products: products,
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		httpx.Middlewares{
			Recovery: logger.Recovery(log),
			Sentry:   telemetry.SentryMiddleware(),
			Tracing:  otelhttp.NewMiddleware(cfg.ServiceName),
			Logger:   logger.Middleware(log),
		},
	)

	checks := httpx.HealthChecks{Version: cfg.ServiceVersion, Database: pool, EventBus: eventBus}
	if redisClient != nil {
		checks.Redis = redisClient
	}
	r.Get("/health", httpx.HealthHandler(checks))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, appConfig)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment, "product_store", cfg.ProductStore)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes under /api.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application) {
	inventoryApi.InventoryRoutes(r, a)
	productApi.ProductRoutes(r, a)
}

// newProductStore builds the demo product store selected by PRODUCT_STORE.
// The Redis client is nil for the memory backend.
func newProductStore(ctx context.Context, cfg *config.Config, log logger.Logger) (*kvstore.RedisClient, repositories.ProductStore, error) {
	demo := models.DemoProducts(time.Now())

	switch cfg.ProductStore {
	case config.ProductStoreRedis:
		client, err := kvstore.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		store := productStore.NewRedisStore(client, cfg.ServiceName)
		seeded, err := store.SeedIfEmpty(ctx, demo)
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		log.Info("redis connected", "seeded_demo_products", seeded)
		return client, store, nil
	case config.ProductStoreMemory:
		return nil, productStore.NewMemoryStore(demo...), nil
	default:
		return nil, nil, fmt.Errorf("unknown product store %q", cfg.ProductStore)
	}
}
