package repositories

import (
	"context"

	"github.com/ghuser/stocktrack/services/inventory/domain/models"
)

// ApplyFunc decides the booking to record against the locked item. It may
// mutate item (the repository persists the result) or return an error to abort.
type ApplyFunc func(item *models.Item) (*models.Booking, error)

// BookingRepository is the persistence interface for the booking ledger.
type BookingRepository interface {
	// Record locks itemID, calls apply and stores the returned booking together
	// with the updated item atomically. Any error from apply aborts without changes.
	Record(ctx context.Context, itemID int64, apply ApplyFunc) (*models.Booking, error)

	// List returns bookings newest first with Item populated, optionally for one item.
	List(ctx context.Context, itemID *int64) ([]*models.Booking, error)
}
