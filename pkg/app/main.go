package app

import (
	"github.com/ghuser/stocktrack/pkg/config"
	"github.com/ghuser/stocktrack/pkg/database"
	"github.com/ghuser/stocktrack/pkg/events"
	"github.com/ghuser/stocktrack/pkg/kvstore"
	"github.com/ghuser/stocktrack/pkg/logger"
	"github.com/ghuser/stocktrack/services/product/domain/repositories"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service Routes calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler; use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "booking recorded", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config   *config.Config
	Db       *database.Database
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *kvstore.RedisClient // nil unless PRODUCT_STORE=redis
	Products repositories.ProductStore
}
