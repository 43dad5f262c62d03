package db

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const itemColumns = `id, name, quantity, location, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (Item, error) {
	var i Item
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Quantity,
		&i.Location,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const insertItem = `-- name: InsertItem :one
INSERT INTO items (name, quantity, location, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + itemColumns

type InsertItemParams struct {
	Name      string
	Quantity  int32
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) InsertItem(ctx context.Context, arg InsertItemParams) (Item, error) {
	row := q.db.QueryRowContext(ctx, insertItem,
		arg.Name,
		arg.Quantity,
		arg.Location,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanItem(row)
}

const getItem = `-- name: GetItem :one
SELECT ` + itemColumns + ` FROM items WHERE id = $1`

func (q *Queries) GetItem(ctx context.Context, id int64) (Item, error) {
	return scanItem(q.db.QueryRowContext(ctx, getItem, id))
}

const getItemForUpdate = `-- name: GetItemForUpdate :one
SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`

// GetItemForUpdate locks the item row until the surrounding transaction ends.
func (q *Queries) GetItemForUpdate(ctx context.Context, id int64) (Item, error) {
	return scanItem(q.db.QueryRowContext(ctx, getItemForUpdate, id))
}

// ItemSortColumn is a column name permitted in ORDER BY.
type ItemSortColumn string

const (
	ItemSortID        ItemSortColumn = "id"
	ItemSortName      ItemSortColumn = "name"
	ItemSortQuantity  ItemSortColumn = "quantity"
	ItemSortLocation  ItemSortColumn = "location"
	ItemSortCreatedAt ItemSortColumn = "created_at"
	ItemSortUpdatedAt ItemSortColumn = "updated_at"
)

func (c ItemSortColumn) valid() bool {
	switch c {
	case ItemSortID, ItemSortName, ItemSortQuantity, ItemSortLocation, ItemSortCreatedAt, ItemSortUpdatedAt:
		return true
	}
	return false
}

const listItems = `-- name: ListItems :many
SELECT ` + itemColumns + ` FROM items
WHERE ($1::text = '' OR name ILIKE '%' || $1 || '%' ESCAPE '\' OR location ILIKE '%' || $1 || '%' ESCAPE '\')
  AND ($2::text = '' OR location = $2)
ORDER BY {{column}} {{direction}}, id ASC`

type ListItemsParams struct {
	Search     string // matched as a substring; LIKE metacharacters are escaped here
	Location   string
	SortColumn ItemSortColumn
	Descending bool
}

func (q *Queries) ListItems(ctx context.Context, arg ListItemsParams) ([]Item, error) {
	if !arg.SortColumn.valid() {
		return nil, fmt.Errorf("db: invalid sort column %q", arg.SortColumn)
	}
	dir := "ASC"
	if arg.Descending {
		dir = "DESC"
	}
	// Only the allow-listed column and a fixed direction reach the statement text.
	stmt := strings.NewReplacer("{{column}}", string(arg.SortColumn), "{{direction}}", dir).Replace(listItems)

	rows, err := q.db.QueryContext(ctx, stmt, EscapeLike(arg.Search), arg.Location)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Item
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// EscapeLike escapes the LIKE metacharacters %, _ and the escape character itself.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

const updateItem = `-- name: UpdateItem :execrows
UPDATE items SET name = $2, quantity = $3, location = $4, updated_at = $5
WHERE id = $1`

type UpdateItemParams struct {
	ID        int64
	Name      string
	Quantity  int32
	Location  string
	UpdatedAt time.Time
}

func (q *Queries) UpdateItem(ctx context.Context, arg UpdateItemParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateItem,
		arg.ID,
		arg.Name,
		arg.Quantity,
		arg.Location,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const updateItemQuantity = `-- name: UpdateItemQuantity :exec
UPDATE items SET quantity = $2, updated_at = $3 WHERE id = $1`

type UpdateItemQuantityParams struct {
	ID        int64
	Quantity  int32
	UpdatedAt time.Time
}

func (q *Queries) UpdateItemQuantity(ctx context.Context, arg UpdateItemQuantityParams) error {
	_, err := q.db.ExecContext(ctx, updateItemQuantity, arg.ID, arg.Quantity, arg.UpdatedAt)
	return err
}

const deleteItem = `-- name: DeleteItem :execrows
DELETE FROM items WHERE id = $1`

func (q *Queries) DeleteItem(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteItem, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const countItems = `-- name: CountItems :one
SELECT count(*) FROM items`

func (q *Queries) CountItems(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countItems).Scan(&count)
	return count, err
}

const getStats = `-- name: GetStats :one
SELECT
    count(*)                                                AS total_items,
    coalesce(sum(quantity), 0)::bigint                      AS total_quantity,
    count(*) FILTER (WHERE quantity > 0 AND quantity < $1)  AS low_stock,
    count(*) FILTER (WHERE quantity = 0)                    AS out_of_stock,
    (SELECT count(*) FROM bookings)                         AS total_bookings
FROM items`

type GetStatsRow struct {
	TotalItems    int64
	TotalQuantity int64
	LowStock      int64
	OutOfStock    int64
	TotalBookings int64
}

func (q *Queries) GetStats(ctx context.Context, lowStockThreshold int32) (GetStatsRow, error) {
	var r GetStatsRow
	err := q.db.QueryRowContext(ctx, getStats, lowStockThreshold).Scan(
		&r.TotalItems,
		&r.TotalQuantity,
		&r.LowStock,
		&r.OutOfStock,
		&r.TotalBookings,
	)
	return r, err
}
