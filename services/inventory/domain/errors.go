package domain

import "errors"

// Sentinel errors for the inventory domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidItem indicates an item field violates domain constraints.
	ErrInvalidItem = errors.New("invalid item")

	// ErrInvalidBooking indicates a booking has a non-positive quantity or an unknown type.
	ErrInvalidBooking = errors.New("invalid booking")

	// ErrInvalidQuery indicates an unsupported filter, sort field or sort order.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrInsufficientQuantity indicates an "out" booking exceeds the quantity on hand.
	ErrInsufficientQuantity = errors.New("insufficient quantity")
)
