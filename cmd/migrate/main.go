package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	inventorymigrations "github.com/ghuser/stocktrack/migrations/inventory"
	"github.com/ghuser/stocktrack/pkg/config"
	"github.com/ghuser/stocktrack/pkg/logger"
	"github.com/ghuser/stocktrack/pkg/migrator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	applied, err := migrator.RunMigrations(ctx, cfg.DatabaseURL, inventorymigrations.FS)
	if err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	if len(applied) == 0 {
		log.Info("schema up to date")
		return
	}
	log.Info("migrations applied", "versions", applied)
}
