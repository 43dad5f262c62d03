package db

import (
	"database/sql"
	"time"
)

type Item struct {
	ID        int64
	Name      string
	Quantity  int32
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Booking struct {
	ID        int64
	ItemID    int64
	Quantity  int32
	Type      string
	Notes     sql.NullString
	CreatedAt time.Time
}
