package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/stocktrack/pkg/logger"
	inventory "github.com/ghuser/stocktrack/services/inventory/domain"
	"github.com/ghuser/stocktrack/services/inventory/domain/models"
	"github.com/ghuser/stocktrack/services/inventory/domain/repositories"
	domainsvcs "github.com/ghuser/stocktrack/services/inventory/domain/services"
)

const instrumentationName = "github.com/ghuser/stocktrack/services/inventory"

// BookingService records stock movements through the booking ledger.
type BookingService struct {
	repo   repositories.BookingRepository
	log    logger.Logger
	tracer trace.Tracer

	applied  metric.Int64Counter
	rejected metric.Int64Counter
}

// NewBookingService returns a BookingService using the global OTel providers.
func NewBookingService(repo repositories.BookingRepository, log logger.Logger) *BookingService {
	meter := otel.Meter(instrumentationName)
	applied, err := meter.Int64Counter("inventory.bookings.applied",
		metric.WithDescription("Bookings committed, by type"))
	if err != nil {
		otel.Handle(err)
	}
	rejected, err := meter.Int64Counter("inventory.bookings.rejected",
		metric.WithDescription("Bookings rejected, by reason"))
	if err != nil {
		otel.Handle(err)
	}
	return &BookingService{
		repo:     repo,
		log:      log,
		tracer:   otel.Tracer(instrumentationName),
		applied:  applied,
		rejected: rejected,
	}
}

// ApplyBookingInput is a requested stock movement.
type ApplyBookingInput struct {
	ItemID   int64
	Quantity int
	Type     string
	Notes    string
}

// Apply validates the request, then atomically records the booking and adjusts
// the item quantity. "out" bookings that exceed the quantity on hand fail with
// ErrInsufficientQuantity and change nothing.
func (s *BookingService) Apply(ctx context.Context, in ApplyBookingInput) (*models.Booking, error) {
	ctx, span := s.tracer.Start(ctx, "BookingService.Apply", trace.WithAttributes(
		attribute.Int64("item.id", in.ItemID),
		attribute.String("booking.type", in.Type),
		attribute.Int("booking.quantity", in.Quantity),
	))
	defer span.End()

	booking, err := s.apply(ctx, in)
	if err != nil {
		reason := rejectionReason(err)
		if s.rejected != nil {
			s.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
		}
		span.SetStatus(codes.Error, reason)
		if reason == "internal" {
			span.RecordError(err)
		} else {
			s.log.InfoContext(ctx, "booking rejected", "item_id", in.ItemID, "type", in.Type, "quantity", in.Quantity, "reason", reason)
		}
		return nil, err
	}

	if s.applied != nil {
		s.applied.Add(ctx, 1, metric.WithAttributes(attribute.String("type", string(booking.Type))))
	}
	span.SetAttributes(attribute.Int64("booking.id", booking.ID))
	return booking, nil
}

func (s *BookingService) apply(ctx context.Context, in ApplyBookingInput) (*models.Booking, error) {
	typ, err := models.ParseBookingType(in.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", inventory.ErrInvalidBooking, err)
	}
	booking, err := models.NewBooking(in.ItemID, in.Quantity, typ, strings.TrimSpace(in.Notes))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", inventory.ErrInvalidBooking, err)
	}

	recorded, err := s.repo.Record(ctx, in.ItemID, func(item *models.Item) (*models.Booking, error) {
		if err := domainsvcs.ApplyBooking(item, booking); err != nil {
			return nil, err
		}
		return booking, nil
	})
	if err != nil {
		return nil, fmt.Errorf("record booking: %w", err)
	}
	return recorded, nil
}

// List returns bookings newest first, optionally only those for itemID.
func (s *BookingService) List(ctx context.Context, itemID *int64) ([]*models.Booking, error) {
	bookings, err := s.repo.List(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, inventory.ErrInsufficientQuantity):
		return "insufficient_quantity"
	case errors.Is(err, inventory.ErrItemNotFound):
		return "item_not_found"
	case errors.Is(err, inventory.ErrInvalidBooking):
		return "invalid_booking"
	default:
		return "internal"
	}
}
