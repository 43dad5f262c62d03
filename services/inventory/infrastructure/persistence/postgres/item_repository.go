package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/stocktrack/pkg/database"
	"github.com/ghuser/stocktrack/pkg/events"
	inventory "github.com/ghuser/stocktrack/services/inventory/domain"
	domainevents "github.com/ghuser/stocktrack/services/inventory/domain/events"
	"github.com/ghuser/stocktrack/services/inventory/domain/models"
	"github.com/ghuser/stocktrack/services/inventory/domain/repositories"
	"github.com/ghuser/stocktrack/services/inventory/infrastructure/persistence/postgres/db"
)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository returns an ItemRepository backed by the given connection pool
// and event bus. A nil bus disables event publishing.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, bus: bus}
}

// Save persists a new Item, assigns its ID and publishes ItemCreatedEvent
// within the same transaction.
func (r *ItemRepository) Save(ctx context.Context, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).InsertItem(ctx, db.InsertItemParams{
			Name:      item.Name.String(),
			Quantity:  int32(item.Quantity), //nolint:gosec // bounded by ValidateQuantity
			Location:  item.Location,
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		})
		if err != nil {
			if pgCode(err) == pgCheckViolation {
				return fmt.Errorf("%w: %w", inventory.ErrInvalidItem, err)
			}
			return fmt.Errorf("insert item: %w", err)
		}
		*item = *rowToItem(row)

		if r.bus != nil {
			eventID := uuid.New()
			if err := publishEvent(ctx, r.bus, tx, domainevents.TopicItemCreated, eventID, domainevents.ItemCreatedEvent{
				EventID:    eventID,
				Version:    eventVersion,
				ItemID:     item.ID,
				Name:       item.Name.String(),
				Quantity:   item.Quantity,
				Location:   item.Location,
				OccurredAt: item.CreatedAt,
			}); err != nil {
				return fmt.Errorf("publish item created: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves an Item by ID. Returns ErrItemNotFound if not found.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	row, err := db.New(r.db.DB()).GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventory.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToItem(row), nil
}

// Find lists items matching q.
func (r *ItemRepository) Find(ctx context.Context, q repositories.ItemQuery) ([]*models.Item, error) {
	params, err := listParams(q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", inventory.ErrInvalidQuery, err)
	}
	rows, err := db.New(r.db.DB()).ListItems(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items, nil
}

// Update reads the item with SELECT ... FOR UPDATE, applies mutate and writes
// it back in the same transaction. Bookings on the item wait for the lock.
func (r *ItemRepository) Update(ctx context.Context, id int64, mutate repositories.MutateFunc) (*models.Item, error) {
	var item *models.Item
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		row, err := q.GetItemForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return inventory.ErrItemNotFound
			}
			return fmt.Errorf("lock item: %w", err)
		}
		item = rowToItem(row)
		if err := mutate(item); err != nil {
			return err
		}

		n, err := q.UpdateItem(ctx, db.UpdateItemParams{
			ID:        id,
			Name:      item.Name.String(),
			Quantity:  int32(item.Quantity), //nolint:gosec // bounded by ValidateQuantity
			Location:  item.Location,
			UpdatedAt: item.UpdatedAt,
		})
		if err != nil {
			if pgCode(err) == pgCheckViolation {
				return fmt.Errorf("%w: %w", inventory.ErrInvalidItem, err)
			}
			return fmt.Errorf("update item: %w", err)
		}
		if n == 0 {
			return inventory.ErrItemNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes the item's bookings and then the item in one transaction and
// publishes ItemDeletedEvent.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		row, err := q.GetItemForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return inventory.ErrItemNotFound
			}
			return fmt.Errorf("lock item: %w", err)
		}
		if _, err := q.DeleteBookingsByItem(ctx, id); err != nil {
			return fmt.Errorf("delete bookings: %w", err)
		}
		if _, err := q.DeleteItem(ctx, id); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}

		if r.bus != nil {
			eventID := uuid.New()
			if err := publishEvent(ctx, r.bus, tx, domainevents.TopicItemDeleted, eventID, domainevents.ItemDeletedEvent{
				EventID:    eventID,
				Version:    eventVersion,
				ItemID:     row.ID,
				Name:       row.Name,
				OccurredAt: nowUTC(),
			}); err != nil {
				return fmt.Errorf("publish item deleted: %w", err)
			}
		}
		return nil
	})
}

// Count returns the number of stored items.
func (r *ItemRepository) Count(ctx context.Context) (int64, error) {
	n, err := db.New(r.db.DB()).CountItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// Stats aggregates item and booking counts in a single query.
func (r *ItemRepository) Stats(ctx context.Context, lowStockThreshold int) (*models.Stats, error) {
	row, err := db.New(r.db.DB()).GetStats(ctx, int32(lowStockThreshold)) //nolint:gosec // small config value
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	return &models.Stats{
		TotalItems:    row.TotalItems,
		TotalQuantity: row.TotalQuantity,
		LowStock:      row.LowStock,
		OutOfStock:    row.OutOfStock,
		TotalBookings: row.TotalBookings,
	}, nil
}
