package models

// Stats is the dashboard summary over all items and bookings.
type Stats struct {
	TotalItems    int64
	TotalQuantity int64
	LowStock      int64 // items with 0 < quantity < threshold
	OutOfStock    int64
	TotalBookings int64
}
