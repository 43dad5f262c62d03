package postgres

import (
	"database/sql"
	"fmt"

	"github.com/ghuser/stocktrack/services/inventory/domain/models"
	"github.com/ghuser/stocktrack/services/inventory/domain/repositories"
	"github.com/ghuser/stocktrack/services/inventory/infrastructure/persistence/postgres/db"
)

var sortColumns = map[repositories.SortField]db.ItemSortColumn{
	repositories.SortByID:        db.ItemSortID,
	repositories.SortByName:      db.ItemSortName,
	repositories.SortByQuantity:  db.ItemSortQuantity,
	repositories.SortByLocation:  db.ItemSortLocation,
	repositories.SortByCreatedAt: db.ItemSortCreatedAt,
	repositories.SortByUpdatedAt: db.ItemSortUpdatedAt,
}

func listParams(q repositories.ItemQuery) (db.ListItemsParams, error) {
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = repositories.DefaultSortField
	}
	col, ok := sortColumns[sortBy]
	if !ok {
		return db.ListItemsParams{}, fmt.Errorf("unsupported sort field %q", q.SortBy)
	}
	return db.ListItemsParams{
		Search:     q.Search,
		Location:   q.Location,
		SortColumn: col,
		Descending: q.SortOrder == repositories.SortDesc,
	}, nil
}

// rowToItem maps a db.Item to a domain models.Item.
func rowToItem(row db.Item) *models.Item {
	return &models.Item{
		ID:        row.ID,
		Name:      models.ItemName(row.Name),
		Quantity:  int(row.Quantity),
		Location:  row.Location,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func rowToBooking(row db.Booking) *models.Booking {
	return &models.Booking{
		ID:        row.ID,
		ItemID:    row.ItemID,
		Quantity:  int(row.Quantity),
		Type:      models.BookingType(row.Type),
		Notes:     row.Notes.String,
		CreatedAt: row.CreatedAt,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
