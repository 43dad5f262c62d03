package features

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"

	"github.com/ghuser/stocktrack/pkg/logger"
	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
	inventory "github.com/ghuser/stocktrack/services/inventory/domain"
	"github.com/ghuser/stocktrack/services/inventory/domain/models"
	"github.com/ghuser/stocktrack/services/inventory/infrastructure/persistence/memory"
)

const lowStockThreshold = 5

type bookingTestContext struct {
	svcs  *appsvcs.Services
	items map[string]*models.Item
	err   error
}

func (c *bookingTestContext) reset() {
	store := memory.NewStore()
	c.svcs = appsvcs.NewWithRepositories(store.Items(), store.Bookings(), lowStockThreshold, logger.Nop())
	c.items = map[string]*models.Item{}
	c.err = nil
}

func (c *bookingTestContext) anItemWithQuantityAt(name string, qty int, location string) error {
	item, err := c.svcs.Item.Create(context.Background(), appsvcs.CreateItemInput{
		Name:     name,
		Quantity: qty,
		Location: location,
	})
	if err != nil {
		return err
	}
	c.items[name] = item
	return nil
}

func (c *bookingTestContext) itemID(name string) (int64, error) {
	item, ok := c.items[name]
	if !ok {
		return 0, fmt.Errorf("no item named %q in scenario", name)
	}
	return item.ID, nil
}

func (c *bookingTestContext) book(qty int, typ, name, notes string) error {
	id, err := c.itemID(name)
	if err != nil {
		return err
	}
	_, c.err = c.svcs.Booking.Apply(context.Background(), appsvcs.ApplyBookingInput{
		ItemID:   id,
		Quantity: qty,
		Type:     typ,
		Notes:    notes,
	})
	return nil
}

func (c *bookingTestContext) iBookOf(qty int, typ, name string) error {
	return c.book(qty, typ, name, "")
}

func (c *bookingTestContext) iBookOfWithNotes(qty int, typ, name, notes string) error {
	return c.book(qty, typ, name, notes)
}

func (c *bookingTestContext) iBookOfAnUnknownItem(qty int, typ string) error {
	_, c.err = c.svcs.Booking.Apply(context.Background(), appsvcs.ApplyBookingInput{
		ItemID:   9999,
		Quantity: qty,
		Type:     typ,
	})
	return nil
}

func (c *bookingTestContext) iDelete(name string) error {
	id, err := c.itemID(name)
	if err != nil {
		return err
	}
	return c.svcs.Item.Delete(context.Background(), id)
}

func (c *bookingTestContext) theBookingSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected booking to succeed, got %v", c.err)
	}
	return nil
}

func (c *bookingTestContext) rejectedWith(target error) error {
	if c.err == nil {
		return fmt.Errorf("expected %v, booking succeeded", target)
	}
	if !errors.Is(c.err, target) {
		return fmt.Errorf("expected %v, got %v", target, c.err)
	}
	return nil
}

func (c *bookingTestContext) rejectedAsInsufficient() error {
	return c.rejectedWith(inventory.ErrInsufficientQuantity)
}

func (c *bookingTestContext) rejectedAsInvalid() error {
	return c.rejectedWith(inventory.ErrInvalidBooking)
}

func (c *bookingTestContext) rejectedAsNotFound() error {
	return c.rejectedWith(inventory.ErrItemNotFound)
}

func (c *bookingTestContext) hasQuantity(name string, want int) error {
	id, err := c.itemID(name)
	if err != nil {
		return err
	}
	item, err := c.svcs.Item.Get(context.Background(), id)
	if err != nil {
		return err
	}
	if item.Quantity != want {
		return fmt.Errorf("%s: expected quantity %d, got %d", name, want, item.Quantity)
	}
	return nil
}

func (c *bookingTestContext) history(name string) ([]*models.Booking, error) {
	id, err := c.itemID(name)
	if err != nil {
		return nil, err
	}
	return c.svcs.Booking.List(context.Background(), &id)
}

func (c *bookingTestContext) historyHasBookings(name string, want int) error {
	list, err := c.history(name)
	if err != nil {
		return err
	}
	if len(list) != want {
		return fmt.Errorf("expected %d bookings for %s, got %d", want, name, len(list))
	}
	return nil
}

func (c *bookingTestContext) latestBookingHasNotes(name, notes string) error {
	list, err := c.history(name)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return fmt.Errorf("no bookings for %s", name)
	}
	if list[0].Notes != notes {
		return fmt.Errorf("expected notes %q, got %q", notes, list[0].Notes)
	}
	return nil
}

func (c *bookingTestContext) dashboardShowsOutOfStock(want int) error {
	st, err := c.svcs.Stats.Get(context.Background())
	if err != nil {
		return err
	}
	if st.OutOfStock != int64(want) {
		return fmt.Errorf("expected %d out of stock, got %d", want, st.OutOfStock)
	}
	return nil
}

func (c *bookingTestContext) noBookingsLeft() error {
	list, err := c.svcs.Booking.List(context.Background(), nil)
	if err != nil {
		return err
	}
	if len(list) != 0 {
		return fmt.Errorf("expected no bookings, got %d", len(list))
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &bookingTestContext{}

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given
	ctx.Step(`^an item "([^"]*)" with quantity (\d+) at "([^"]*)"$`, tc.anItemWithQuantityAt)

	// When
	ctx.Step(`^I book (-?\d+) "([^"]*)" of "([^"]*)"$`, tc.iBookOf)
	ctx.Step(`^I book (-?\d+) "([^"]*)" of "([^"]*)" with notes "([^"]*)"$`, tc.iBookOfWithNotes)
	ctx.Step(`^I book (-?\d+) "([^"]*)" of an unknown item$`, tc.iBookOfAnUnknownItem)
	ctx.Step(`^I delete "([^"]*)"$`, tc.iDelete)

	// Then
	ctx.Step(`^the booking succeeds$`, tc.theBookingSucceeds)
	ctx.Step(`^the booking is rejected as insufficient quantity$`, tc.rejectedAsInsufficient)
	ctx.Step(`^the booking is rejected as invalid$`, tc.rejectedAsInvalid)
	ctx.Step(`^the booking is rejected as item not found$`, tc.rejectedAsNotFound)
	ctx.Step(`^"([^"]*)" has quantity (\d+)$`, tc.hasQuantity)
	ctx.Step(`^the history of "([^"]*)" has (\d+) bookings?$`, tc.historyHasBookings)
	ctx.Step(`^the latest booking of "([^"]*)" has notes "([^"]*)"$`, tc.latestBookingHasNotes)
	ctx.Step(`^the dashboard shows (\d+) items? out of stock$`, tc.dashboardShowsOutOfStock)
	ctx.Step(`^there are no bookings left$`, tc.noBookingsLeft)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"booking.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
