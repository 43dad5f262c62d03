package db

import (
	"context"
	"database/sql"
	"time"
)

const insertBooking = `-- name: InsertBooking :one
INSERT INTO bookings (item_id, quantity, type, notes, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, item_id, quantity, type, notes, created_at`

type InsertBookingParams struct {
	ItemID    int64
	Quantity  int32
	Type      string
	Notes     sql.NullString
	CreatedAt time.Time
}

func (q *Queries) InsertBooking(ctx context.Context, arg InsertBookingParams) (Booking, error) {
	row := q.db.QueryRowContext(ctx, insertBooking,
		arg.ItemID,
		arg.Quantity,
		arg.Type,
		arg.Notes,
		arg.CreatedAt,
	)
	var b Booking
	err := row.Scan(
		&b.ID,
		&b.ItemID,
		&b.Quantity,
		&b.Type,
		&b.Notes,
		&b.CreatedAt,
	)
	return b, err
}

const deleteBookingsByItem = `-- name: DeleteBookingsByItem :execrows
DELETE FROM bookings WHERE item_id = $1`

func (q *Queries) DeleteBookingsByItem(ctx context.Context, itemID int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteBookingsByItem, itemID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listBookings = `-- name: ListBookings :many
SELECT b.id, b.item_id, b.quantity, b.type, b.notes, b.created_at,
       i.id, i.name, i.quantity, i.location, i.created_at, i.updated_at
FROM bookings b
JOIN items i ON i.id = b.item_id
WHERE ($1::bigint IS NULL OR b.item_id = $1)
ORDER BY b.created_at DESC, b.id DESC`

type ListBookingsRow struct {
	Booking Booking
	Item    Item
}

func (q *Queries) ListBookings(ctx context.Context, itemID sql.NullInt64) ([]ListBookingsRow, error) {
	rows, err := q.db.QueryContext(ctx, listBookings, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListBookingsRow
	for rows.Next() {
		var r ListBookingsRow
		if err := rows.Scan(
			&r.Booking.ID,
			&r.Booking.ItemID,
			&r.Booking.Quantity,
			&r.Booking.Type,
			&r.Booking.Notes,
			&r.Booking.CreatedAt,
			&r.Item.ID,
			&r.Item.Name,
			&r.Item.Quantity,
			&r.Item.Location,
			&r.Item.CreatedAt,
			&r.Item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
