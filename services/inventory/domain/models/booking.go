package models

import (
	"fmt"
	"strings"
	"time"
)

// BookingType is the direction of a stock movement.
type BookingType string

const (
	BookingIn  BookingType = "in"
	BookingOut BookingType = "out"
)

// ParseBookingType accepts "in" or "out" in any case.
func ParseBookingType(s string) (BookingType, error) {
	switch t := BookingType(strings.ToLower(strings.TrimSpace(s))); t {
	case BookingIn, BookingOut:
		return t, nil
	default:
		return "", fmt.Errorf("booking type must be %q or %q, got %q", BookingIn, BookingOut, s)
	}
}

// Booking is an immutable ledger entry recording a movement against an Item.
type Booking struct {
	ID        int64
	ItemID    int64
	Quantity  int // always > 0; direction comes from Type
	Type      BookingType
	Notes     string
	CreatedAt time.Time

	// Item is populated on reads that join the booked item.
	Item *Item
}

// NewBooking constructs an unsaved Booking.
func NewBooking(itemID int64, quantity int, bookingType BookingType, notes string) (*Booking, error) {
	if itemID <= 0 {
		return nil, fmt.Errorf("item id must be positive, got %d", itemID)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be greater than 0, got %d", quantity)
	}
	if bookingType != BookingIn && bookingType != BookingOut {
		return nil, fmt.Errorf("booking type must be %q or %q, got %q", BookingIn, BookingOut, bookingType)
	}
	return &Booking{
		ItemID:    itemID,
		Quantity:  quantity,
		Type:      bookingType,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Delta is the signed quantity change this booking applies to its item.
func (b *Booking) Delta() int {
	if b.Type == BookingOut {
		return -b.Quantity
	}
	return b.Quantity
}
