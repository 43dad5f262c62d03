package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/stocktrack/pkg/logger"
)

// Handler processes one message. Returning an error triggers a retry.
type Handler func(ctx context.Context, msg *message.Message) error

// RetryPolicy bounds how often a failing handler is re-run before the
// message is nacked. Delays double from BaseDelay up to MaxDelay.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// DefaultRetryPolicy waits 1s then 2s between three attempts.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, BaseDelay: time.Second, MaxDelay: 10 * time.Second}

func (p RetryPolicy) delay(attempt int) time.Duration {
	if attempt > 32 && p.MaxDelay > 0 {
		return p.MaxDelay
	}
	d := p.BaseDelay << (attempt - 1)
	if p.MaxDelay > 0 && (d > p.MaxDelay || d <= 0) {
		return p.MaxDelay
	}
	return d
}

// run calls h until it succeeds, attempts run out or ctx is done.
func (p RetryPolicy) run(ctx context.Context, msg *message.Message, h Handler, log logger.Logger) error {
	var err error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		if err = h(ctx, msg); err == nil {
			return nil
		}
		if attempt == p.Attempts {
			break
		}
		wait := p.delay(attempt)
		log.WarnContext(ctx, "events: handler failed, retrying",
			"message_uuid", msg.UUID,
			"event_id", msg.Metadata.Get(MetadataEventID),
			"attempt", attempt,
			"next_delay", wait,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("events: handler failed after %d attempts: %w", p.Attempts, err)
}

// Subscribe consumes topic in the background. Each handler call gets the
// publisher's trace context. Messages whose retries are exhausted are nacked
// and their error is sent on the returned channel (buffered, capacity 100),
// which the caller must drain. Close waits for in-flight handlers.
func (q *EventBus) Subscribe(ctx context.Context, topic string, h Handler) (<-chan error, error) {
	ch, err := q.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, 100)

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)

		for msg := range ch {
			msgCtx := extractTraceContext(ctx, msg)
			if err := q.opts.Retry.run(msgCtx, msg, h, q.log); err != nil {
				msg.Nack()
				select {
				case errCh <- fmt.Errorf("%s: %w", topic, err):
				default:
					q.log.ErrorContext(msgCtx, "events: error channel full, dropping error",
						"topic", topic, "error", err)
				}
				continue
			}
			msg.Ack()
		}
	}()

	return errCh, nil
}

// SubscribeAll subscribes every topic in handlers and logs handler failures.
func (q *EventBus) SubscribeAll(ctx context.Context, handlers map[string]Handler) error {
	for topic, h := range handlers {
		errCh, err := q.Subscribe(ctx, topic, h)
		if err != nil {
			return err
		}
		go func() {
			for err := range errCh {
				q.log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}()
	}
	return nil
}
