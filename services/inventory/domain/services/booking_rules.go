package services

import (
	"fmt"

	"github.com/ghuser/stocktrack/services/inventory/domain"
	"github.com/ghuser/stocktrack/services/inventory/domain/models"
)

// NextQuantity returns the item quantity after applying a booking of the given
// type and size to current. It fails with ErrInsufficientQuantity when an "out"
// booking would drive the quantity below zero.
func NextQuantity(current int, bookingType models.BookingType, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("%w: quantity must be greater than 0", domain.ErrInvalidBooking)
	}

	switch bookingType {
	case models.BookingIn:
		if quantity > MaxQuantity-current {
			return 0, fmt.Errorf("%w: resulting quantity exceeds %d", domain.ErrInvalidBooking, MaxQuantity)
		}
		return current + quantity, nil
	case models.BookingOut:
		if quantity > current {
			return 0, fmt.Errorf("%w: requested %d, available %d", domain.ErrInsufficientQuantity, quantity, current)
		}
		return current - quantity, nil
	default:
		return 0, fmt.Errorf("%w: unknown type %q", domain.ErrInvalidBooking, bookingType)
	}
}

// ApplyBooking validates b against item, updates the item's quantity and
// UpdatedAt in place, and stamps b with the item ID.
func ApplyBooking(item *models.Item, b *models.Booking) error {
	next, err := NextQuantity(item.Quantity, b.Type, b.Quantity)
	if err != nil {
		return err
	}
	item.Quantity = next
	item.Touch()
	b.ItemID = item.ID
	return nil
}
