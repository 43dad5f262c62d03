// Package subscribers reacts to inventory domain events delivered by the
// outbox: low-stock alerts and an audit trail of item lifecycle changes.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/stocktrack/pkg/events"
	"github.com/ghuser/stocktrack/pkg/logger"
	invevents "github.com/ghuser/stocktrack/services/inventory/domain/events"
	"github.com/ghuser/stocktrack/services/inventory/domain/models"
)

// Handlers builds the inventory subscriptions. Handlers must be idempotent:
// the EventBus retries failed messages.
type Handlers struct {
	log               logger.Logger
	lowStockThreshold int
	alerts            metric.Int64Counter
}

// New returns Handlers that alert when an outbound booking leaves an item
// below lowStockThreshold.
func New(log logger.Logger, lowStockThreshold int) (*Handlers, error) {
	alerts, err := otel.Meter("inventory").Int64Counter("inventory.stock.alerts",
		metric.WithDescription("Low or out of stock alerts raised by outbound bookings"))
	if err != nil {
		return nil, fmt.Errorf("create alerts counter: %w", err)
	}
	return &Handlers{log: log, lowStockThreshold: lowStockThreshold, alerts: alerts}, nil
}

// Topics maps every topic the worker consumes to its handler.
func (h *Handlers) Topics() map[string]events.Handler {
	return map[string]events.Handler{
		invevents.TopicBookingRecorded: h.BookingRecorded,
		invevents.TopicItemCreated:     h.ItemCreated,
		invevents.TopicItemDeleted:     h.ItemDeleted,
	}
}

func decode[T any](msg *message.Message) (T, error) {
	var evt T
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return evt, fmt.Errorf("decode %T (message %s): %w", evt, msg.UUID, err)
	}
	return evt, nil
}

// BookingRecorded raises a stock alert when an "out" booking drops the item
// below the threshold.
func (h *Handlers) BookingRecorded(ctx context.Context, msg *message.Message) error {
	evt, err := decode[invevents.BookingRecordedEvent](msg)
	if err != nil {
		return err
	}

	h.log.DebugContext(ctx, "booking recorded",
		"booking_id", evt.BookingID,
		"item_id", evt.ItemID,
		"type", evt.Type,
		"quantity", evt.Quantity,
		"quantity_after", evt.QuantityAfter,
		"event_id", msg.Metadata.Get(events.MetadataEventID),
	)

	if evt.Type != string(models.BookingOut) {
		return nil
	}

	level := ""
	switch {
	case evt.QuantityAfter == 0:
		level = "out_of_stock"
		h.log.WarnContext(ctx, "item out of stock",
			"item_id", evt.ItemID, "item_name", evt.ItemName, "booking_id", evt.BookingID)
	case evt.QuantityAfter < h.lowStockThreshold:
		level = "low_stock"
		h.log.WarnContext(ctx, "item low on stock",
			"item_id", evt.ItemID, "item_name", evt.ItemName,
			"quantity", evt.QuantityAfter, "threshold", h.lowStockThreshold)
	default:
		return nil
	}
	h.alerts.Add(ctx, 1, metric.WithAttributes(attribute.String("level", level)))
	return nil
}

// ItemCreated writes an audit entry.
func (h *Handlers) ItemCreated(ctx context.Context, msg *message.Message) error {
	evt, err := decode[invevents.ItemCreatedEvent](msg)
	if err != nil {
		return err
	}
	h.log.InfoContext(ctx, "audit: item created",
		"item_id", evt.ItemID,
		"name", evt.Name,
		"quantity", evt.Quantity,
		"location", evt.Location,
		"occurred_at", evt.OccurredAt,
	)
	return nil
}

// ItemDeleted writes an audit entry.
func (h *Handlers) ItemDeleted(ctx context.Context, msg *message.Message) error {
	evt, err := decode[invevents.ItemDeletedEvent](msg)
	if err != nil {
		return err
	}
	h.log.InfoContext(ctx, "audit: item deleted",
		"item_id", evt.ItemID,
		"name", evt.Name,
		"occurred_at", evt.OccurredAt,
	)
	return nil
}
