package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/stocktrack/pkg/events"
)

// eventVersion is the schema version stamped on every inventory event.
const eventVersion = 1

// publishEvent writes payload to the outbox inside tx so it is delivered only
// if the surrounding transaction commits.
func publishEvent(ctx context.Context, bus *events.EventBus, tx *sql.Tx, topic string, eventID uuid.UUID, payload any) error {
	msg, err := events.NewEventMessage(ctx, eventID.String(), eventVersion, payload)
	if err != nil {
		return err
	}
	return bus.PublishTx(ctx, tx, topic, msg)
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
