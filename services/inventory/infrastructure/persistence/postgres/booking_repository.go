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

// BookingRepository implements repositories.BookingRepository against PostgreSQL.
type BookingRepository struct {
	db  *database.Database
	bus *events.EventBus
}

var _ repositories.BookingRepository = (*BookingRepository)(nil)

// NewBookingRepository returns a BookingRepository. A nil bus disables event publishing.
func NewBookingRepository(database *database.Database, bus *events.EventBus) *BookingRepository {
	return &BookingRepository{db: database, bus: bus}
}

// Record locks the item row with SELECT ... FOR UPDATE, lets apply decide the
// booking, then inserts the booking, writes the new quantity and publishes
// BookingRecordedEvent before committing. Concurrent bookings on the same item
// serialize on the row lock.
func (r *BookingRepository) Record(ctx context.Context, itemID int64, apply repositories.ApplyFunc) (*models.Booking, error) {
	var booking *models.Booking
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)

		row, err := q.GetItemForUpdate(ctx, itemID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return inventory.ErrItemNotFound
			}
			return fmt.Errorf("lock item: %w", err)
		}
		item := rowToItem(row)

		b, err := apply(item)
		if err != nil {
			return err
		}

		inserted, err := q.InsertBooking(ctx, db.InsertBookingParams{
			ItemID:    item.ID,
			Quantity:  int32(b.Quantity), //nolint:gosec // validated positive and bounded
			Type:      string(b.Type),
			Notes:     nullString(b.Notes),
			CreatedAt: b.CreatedAt,
		})
		if err != nil {
			return translateBookingErr("insert booking", inventory.ErrInvalidBooking, err)
		}

		if err := q.UpdateItemQuantity(ctx, db.UpdateItemQuantityParams{
			ID:        item.ID,
			Quantity:  int32(item.Quantity), //nolint:gosec // bounded by NextQuantity
			UpdatedAt: item.UpdatedAt,
		}); err != nil {
			return translateBookingErr("update item quantity", inventory.ErrInsufficientQuantity, err)
		}

		booking = rowToBooking(inserted)
		booking.Item = item

		if r.bus != nil {
			eventID := uuid.New()
			if err := publishEvent(ctx, r.bus, tx, domainevents.TopicBookingRecorded, eventID, domainevents.BookingRecordedEvent{
				EventID:       eventID,
				Version:       eventVersion,
				BookingID:     booking.ID,
				ItemID:        item.ID,
				ItemName:      item.Name.String(),
				Type:          string(booking.Type),
				Quantity:      booking.Quantity,
				QuantityAfter: item.Quantity,
				OccurredAt:    booking.CreatedAt,
			}); err != nil {
				return fmt.Errorf("publish booking recorded: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// List returns bookings newest first, each with its item, optionally filtered to one item.
func (r *BookingRepository) List(ctx context.Context, itemID *int64) ([]*models.Booking, error) {
	var filter sql.NullInt64
	if itemID != nil {
		filter = sql.NullInt64{Int64: *itemID, Valid: true}
	}
	rows, err := db.New(r.db.DB()).ListBookings(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	bookings := make([]*models.Booking, len(rows))
	for i, row := range rows {
		b := rowToBooking(row.Booking)
		b.Item = rowToItem(row.Item)
		bookings[i] = b
	}
	return bookings, nil
}

// translateBookingErr maps constraint violations raised inside Record to domain
// errors. A CHECK violation becomes onCheck.
func translateBookingErr(op string, onCheck, err error) error {
	switch pgCode(err) {
	case pgCheckViolation:
		return fmt.Errorf("%w: %s: %w", onCheck, op, err)
	case pgForeignKeyViolation:
		return inventory.ErrItemNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
