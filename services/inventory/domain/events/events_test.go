package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stocktrack/services/inventory/domain/events"
)

func jsonKeys(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}
	return raw
}

func TestItemCreatedEvent_JSONFieldNames(t *testing.T) {
	raw := jsonKeys(t, events.ItemCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ItemID:     3,
		Name:       "Widget",
		Quantity:   4,
		Location:   "Cabinet 1, left top",
		OccurredAt: time.Now().UTC(),
	})
	for _, field := range []string{"event_id", "version", "item_id", "name", "quantity", "location", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %v", field, raw)
		}
	}
}

func TestBookingRecordedEvent_JSONFieldNames(t *testing.T) {
	raw := jsonKeys(t, events.BookingRecordedEvent{
		EventID:       uuid.New(),
		Version:       1,
		BookingID:     9,
		ItemID:        3,
		ItemName:      "Widget",
		Type:          "out",
		Quantity:      2,
		QuantityAfter: 1,
		OccurredAt:    time.Now().UTC(),
	})
	for _, field := range []string{"event_id", "booking_id", "item_id", "item_name", "type", "quantity", "quantity_after", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %v", field, raw)
		}
	}
	if raw["quantity_after"].(float64) != 1 {
		t.Errorf("quantity_after: got %v", raw["quantity_after"])
	}
}

func TestTopics(t *testing.T) {
	topics := map[string]string{
		events.TopicItemCreated:     "item.created",
		events.TopicItemDeleted:     "item.deleted",
		events.TopicBookingRecorded: "booking.recorded",
	}
	for got, want := range topics {
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}
