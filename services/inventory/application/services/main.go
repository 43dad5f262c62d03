package services

import (
	"github.com/ghuser/stocktrack/pkg/app"
	"github.com/ghuser/stocktrack/pkg/logger"
	"github.com/ghuser/stocktrack/services/inventory/domain/repositories"
	"github.com/ghuser/stocktrack/services/inventory/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item      *ItemService
	Booking   *BookingService
	Stats     *StatsService
	Locations *LocationService
	Export    *ExportService
}

// New wires all inventory application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	return NewWithRepositories(
		postgres.NewItemRepository(a.Db, a.EventBus),
		postgres.NewBookingRepository(a.Db, a.EventBus),
		a.Config.LowStockThreshold,
		a.Logger,
	)
}

// NewWithRepositories wires the services over arbitrary repository implementations.
func NewWithRepositories(items repositories.ItemRepository, bookings repositories.BookingRepository, lowStockThreshold int, log logger.Logger) *Services {
	itemSvc := NewItemService(items)
	return &Services{
		Item:      itemSvc,
		Booking:   NewBookingService(bookings, log),
		Stats:     NewStatsService(items, lowStockThreshold),
		Locations: NewLocationService(itemSvc),
		Export:    NewExportService(itemSvc),
	}
}
