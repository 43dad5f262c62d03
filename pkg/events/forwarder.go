package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/components/forwarder"
)

// StartForwarder runs the daemon that moves messages from the forwarder queue
// to their target topics. It needs a bus created with forwarding enabled,
// may be called once, and returns when the daemon is running.
func (q *EventBus) StartForwarder(ctx context.Context) error {
	if !q.opts.Forward {
		return errors.New("events: forwarding is disabled on this bus")
	}
	if q.fwd != nil {
		return errors.New("events: forwarder already started")
	}

	wlog := newWatermillLogger(q.log.With("component", "forwarder"))

	queue, err := newSQLSubscriber(q.db, wlog, "forwarder-consumer")
	if err != nil {
		return err
	}
	target, err := newSQLPublisher(q.db, wlog, true)
	if err != nil {
		_ = queue.Close()
		return err
	}

	fwd, err := forwarder.NewForwarder(queue, target, wlog, forwarder.Config{ForwarderTopic: forwarderTopic})
	if err != nil {
		_ = target.Close()
		_ = queue.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	q.fwd = fwd

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.log.InfoContext(ctx, "events: forwarder started")
		if err := fwd.Run(ctx); err != nil {
			q.log.ErrorContext(ctx, "events: forwarder stopped", "error", err)
			return
		}
		q.log.InfoContext(ctx, "events: forwarder stopped")
	}()

	select {
	case <-fwd.Running():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: waiting for forwarder: %w", ctx.Err())
	}
}
