package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicBookingRecorded is published in the same transaction that records a booking.
const TopicBookingRecorded = "booking.recorded"

// BookingRecordedEvent describes a committed stock movement and the resulting quantity.
type BookingRecordedEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	Version       int       `json:"version"`
	BookingID     int64     `json:"booking_id"`
	ItemID        int64     `json:"item_id"`
	ItemName      string    `json:"item_name"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	QuantityAfter int       `json:"quantity_after"`
	OccurredAt    time.Time `json:"occurred_at"`
}
