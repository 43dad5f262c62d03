// Package events is the transactional outbox and pub/sub layer, built on
// Watermill's PostgreSQL transport.
//
// Repositories publish domain events with PublishTx inside the transaction
// that changes the data, so an event exists if and only if the change
// committed. cmd/worker subscribes to the topics.
//
// Subscribers in the same consumer group share the work: each message is
// handled by one instance. Handlers must be idempotent, a failing handler is
// retried according to the bus RetryPolicy and then nacked for redelivery.
//
// With forwarding enabled every message first lands on an internal queue and
// a forwarder daemon (see StartForwarder) moves it to its real topic.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ghuser/stocktrack/pkg/config"
	"github.com/ghuser/stocktrack/pkg/logger"
)

const (
	shutdownTimeout = 30 * time.Second
	forwarderTopic  = "_forwarder_queue"
)

// Options configures an EventBus.
type Options struct {
	DatabaseURL string
	// ConsumerGroup names the offset group shared by all subscriber instances.
	ConsumerGroup string
	// Forward routes published messages through the forwarder queue.
	Forward bool
	Retry   RetryPolicy
}

// OptionsFromConfig derives bus options from the process configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		DatabaseURL:   cfg.DatabaseURL,
		ConsumerGroup: cfg.ServiceName + "-consumer",
		Forward:       cfg.EventsForwarder,
		Retry:         DefaultRetryPolicy,
	}
}

// EventBus publishes and consumes domain events stored in PostgreSQL.
type EventBus struct {
	db         *sql.DB
	publisher  message.Publisher
	subscriber *watermillsql.Subscriber
	fwd        *forwarder.Forwarder
	opts       Options
	log        logger.Logger
	wg         sync.WaitGroup
}

// NewEventBus opens the outbox connection described by cfg.
func NewEventBus(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return New(OptionsFromConfig(cfg), log)
}

// New opens its own connection pool and creates the Watermill publisher and
// subscriber. The outbox tables are created on first use.
func New(opts Options, log logger.Logger) (*EventBus, error) {
	if opts.Retry.Attempts <= 0 {
		opts.Retry = DefaultRetryPolicy
	}

	db, err := sql.Open("pgx", opts.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("events: open db: %w", err)
	}

	wlog := newWatermillLogger(log)

	pub, err := newSQLPublisher(db, wlog, true)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sub, err := newSQLSubscriber(db, wlog, opts.ConsumerGroup)
	if err != nil {
		_ = pub.Close()
		_ = db.Close()
		return nil, err
	}

	return &EventBus{
		db:         db,
		publisher:  wrapForwarding(pub, opts.Forward),
		subscriber: sub,
		opts:       opts,
		log:        log,
	}, nil
}

// newSQLPublisher accepts the pool or an open transaction.
func newSQLPublisher(db watermillsql.ContextExecutor, wlog *watermillLogger, initSchema bool) (*watermillsql.Publisher, error) {
	pub, err := watermillsql.NewPublisher(db, watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: initSchema,
	}, wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}
	return pub, nil
}

func newSQLSubscriber(db *sql.DB, wlog *watermillLogger, group string) (*watermillsql.Subscriber, error) {
	sub, err := watermillsql.NewSubscriber(db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    group,
	}, wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new subscriber %q: %w", group, err)
	}
	return sub, nil
}

func wrapForwarding(pub message.Publisher, forward bool) message.Publisher {
	if !forward {
		return pub
	}
	return forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: forwarderTopic})
}

// Forwarding reports whether messages go through the forwarder queue.
func (q *EventBus) Forwarding() bool { return q.opts.Forward }

// Ping checks the outbox database connection.
func (q *EventBus) Ping(ctx context.Context) error {
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops the subscriber and forwarder, waits up to 30s for in-flight
// handlers and then releases the publisher and connection pool.
func (q *EventBus) Close() error {
	var errs []error
	if err := q.subscriber.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events: close subscriber: %w", err))
	}
	if q.fwd != nil {
		if err := q.fwd.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: close forwarder: %w", err))
		}
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		q.log.Error("events: timed out waiting for in-flight handlers")
	}

	if err := q.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events: close publisher: %w", err))
	}
	if err := q.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events: close db: %w", err))
	}
	return errors.Join(errs...)
}
