package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Metadata keys set on every domain event message.
const (
	MetadataEventID      = "event_id"
	MetadataEventVersion = "event_version"
)

// NewEventMessage marshals payload as JSON and wraps it in a Watermill message
// carrying the event ID, schema version and the trace context from ctx.
func NewEventMessage(ctx context.Context, eventID string, version int, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("events: marshal payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(MetadataEventID, eventID)
	msg.Metadata.Set(MetadataEventVersion, strconv.Itoa(version))
	injectTraceContext(ctx, msg)
	return msg, nil
}

// PublishTx writes msgs to the outbox inside tx. Subscribers see them only
// once tx commits; a rollback discards them with the data change.
func (q *EventBus) PublishTx(ctx context.Context, tx *sql.Tx, topic string, msgs ...*message.Message) error {
	// tables already exist: New initialised the schema
	pub, err := newSQLPublisher(tx, newWatermillLogger(q.log), false)
	if err != nil {
		return err
	}
	return publish(ctx, wrapForwarding(pub, q.opts.Forward), topic, msgs)
}

// Publish writes msgs outside any business transaction.
func (q *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	return publish(ctx, q.publisher, topic, msgs)
}

func publish(ctx context.Context, pub message.Publisher, topic string, msgs []*message.Message) error {
	for _, msg := range msgs {
		injectTraceContext(ctx, msg)
	}
	if err := pub.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

func injectTraceContext(ctx context.Context, msg *message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for k, v := range carrier {
		msg.Metadata.Set(k, v)
	}
}

// extractTraceContext restores the publisher's trace onto ctx.
func extractTraceContext(ctx context.Context, msg *message.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Metadata))
}
