package api

import (
	"context"

	"github.com/go-chi/chi/v5"

	inventorymigrations "github.com/ghuser/stocktrack/migrations/inventory"
	"github.com/ghuser/stocktrack/pkg/app"
	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/logger"
	"github.com/ghuser/stocktrack/pkg/migrator"
	"github.com/ghuser/stocktrack/services/inventory/application/handlers"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
)

// InventoryRoutes registers item, booking, stats, location and setup endpoints
// on the provided chi router.
func InventoryRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	errs := errhttp.NewResponder(a.Logger, a.Config.IsProduction())
	migrate := func(ctx context.Context) ([]int64, error) {
		return migrator.Run(ctx, a.Db.DB(), inventorymigrations.FS)
	}
	Mount(r, svcs, errs, migrate, a.Logger)
}

// Mount registers the inventory endpoints backed by svcs.
func Mount(r chi.Router, svcs *appsvcs.Services, errs *errhttp.Responder, migrate handlers.MigrateFunc, log logger.Logger) {
	locations := handlers.NewLocationsHandler(svcs, errs)
	setup := handlers.NewSetupDBHandler(svcs, migrate, log)

	r.Group(func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", handlers.NewListItemsHandler(svcs, errs).Execute)
			r.Post("/", handlers.NewPostItemHandler(svcs, errs).Execute)
			r.Get("/export", handlers.NewExportItemsHandler(svcs, errs).Execute)
			r.Get("/{id}", handlers.NewGetItemHandler(svcs, errs).Execute)
			r.Put("/{id}", handlers.NewPutItemHandler(svcs, errs).Execute)
			r.Delete("/{id}", handlers.NewDeleteItemHandler(svcs, errs).Execute)
		})
		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", handlers.NewListBookingsHandler(svcs, errs).Execute)
			r.Post("/", handlers.NewPostBookingHandler(svcs, errs).Execute)
		})
		r.Get("/stats", handlers.NewGetStatsHandler(svcs, errs).Execute)
		r.Get("/locations", locations.List)
		r.Get("/locations/qr", locations.QRCode)
		r.Get("/storage-map", locations.StorageMap)
		r.Get("/setup-db", setup.Status)
		r.Post("/setup-db/migrate", setup.Migrate)
	})
}
