package repositories

import (
	"context"

	"github.com/ghuser/stocktrack/services/inventory/domain/models"
)

// MutateFunc edits a locked copy of an item in place.
type MutateFunc func(item *models.Item) error

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
type ItemRepository interface {
	// Save inserts a new Item and assigns its ID.
	Save(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id int64) (*models.Item, error)

	// Find lists items matching q. Ties on the sort column are broken by id ascending.
	Find(ctx context.Context, q ItemQuery) ([]*models.Item, error)

	// Update locks the item, lets mutate change it and persists the result in
	// one step, so a booking committing meanwhile cannot be overwritten.
	// Returns ErrItemNotFound if absent; an error from mutate aborts the update.
	Update(ctx context.Context, id int64, mutate MutateFunc) (*models.Item, error)

	// Delete removes an item and its bookings.
	Delete(ctx context.Context, id int64) error

	Count(ctx context.Context) (int64, error)

	// Stats aggregates item and booking counts. lowStockThreshold bounds LowStock.
	Stats(ctx context.Context, lowStockThreshold int) (*models.Stats, error)
}
