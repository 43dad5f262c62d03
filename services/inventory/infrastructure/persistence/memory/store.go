// Package memory is an in-process implementation of the inventory repositories.
// It backs unit tests and feature scenarios and mirrors the PostgreSQL
// behaviour: sequential IDs, cascade on delete and all-or-nothing bookings.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	inventory "github.com/ghuser/stocktrack/services/inventory/domain"
	"github.com/ghuser/stocktrack/services/inventory/domain/models"
	"github.com/ghuser/stocktrack/services/inventory/domain/repositories"
)

// Store holds items and bookings behind one mutex.
type Store struct {
	mu            sync.Mutex
	items         map[int64]*models.Item
	bookings      []*models.Booking
	nextItemID    int64
	nextBookingID int64
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{items: make(map[int64]*models.Item)}
}

// Items returns the item repository view of the store.
func (s *Store) Items() *ItemRepository { return &ItemRepository{s: s} }

// Bookings returns the booking repository view of the store.
func (s *Store) Bookings() *BookingRepository { return &BookingRepository{s: s} }

// ItemRepository implements repositories.ItemRepository in memory.
type ItemRepository struct{ s *Store }

var _ repositories.ItemRepository = (*ItemRepository)(nil)

func (r *ItemRepository) Save(_ context.Context, item *models.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextItemID++
	item.ID = r.s.nextItemID
	r.s.items[item.ID] = item.Clone()
	return nil
}

func (r *ItemRepository) GetByID(_ context.Context, id int64) (*models.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[id]
	if !ok {
		return nil, inventory.ErrItemNotFound
	}
	return item.Clone(), nil
}

func (r *ItemRepository) Find(_ context.Context, q repositories.ItemQuery) ([]*models.Item, error) {
	less, err := itemComparator(q.SortBy)
	if err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	out := make([]*models.Item, 0, len(r.s.items))
	for _, item := range r.s.items {
		if q.Location != "" && item.Location != q.Location {
			continue
		}
		if q.Search != "" &&
			!item.Name.ContainsFold(q.Search) &&
			!strings.Contains(strings.ToLower(item.Location), strings.ToLower(q.Search)) {
			continue
		}
		out = append(out, item.Clone())
	}
	r.s.mu.Unlock()

	desc := q.SortOrder == repositories.SortDesc
	slices.SortFunc(out, func(a, b *models.Item) int {
		c := less(a, b)
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func itemComparator(f repositories.SortField) (func(a, b *models.Item) int, error) {
	switch f {
	case repositories.SortByID:
		return func(a, b *models.Item) int { return cmp.Compare(a.ID, b.ID) }, nil
	case repositories.SortByName, "":
		return func(a, b *models.Item) int { return cmp.Compare(a.Name, b.Name) }, nil
	case repositories.SortByQuantity:
		return func(a, b *models.Item) int { return cmp.Compare(a.Quantity, b.Quantity) }, nil
	case repositories.SortByLocation:
		return func(a, b *models.Item) int { return cmp.Compare(a.Location, b.Location) }, nil
	case repositories.SortByCreatedAt:
		return func(a, b *models.Item) int { return a.CreatedAt.Compare(b.CreatedAt) }, nil
	case repositories.SortByUpdatedAt:
		return func(a, b *models.Item) int { return a.UpdatedAt.Compare(b.UpdatedAt) }, nil
	default:
		return nil, inventory.ErrInvalidQuery
	}
}

// Update holds the store mutex from read to write.
func (r *ItemRepository) Update(_ context.Context, id int64, mutate repositories.MutateFunc) (*models.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.items[id]
	if !ok {
		return nil, inventory.ErrItemNotFound
	}
	item := cur.Clone()
	if err := mutate(item); err != nil {
		return nil, err
	}
	item.ID = id
	r.s.items[id] = item.Clone()
	return item, nil
}

func (r *ItemRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return inventory.ErrItemNotFound
	}
	r.s.bookings = slices.DeleteFunc(r.s.bookings, func(b *models.Booking) bool { return b.ItemID == id })
	delete(r.s.items, id)
	return nil
}

func (r *ItemRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.items)), nil
}

func (r *ItemRepository) Stats(_ context.Context, lowStockThreshold int) (*models.Stats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st := &models.Stats{
		TotalItems:    int64(len(r.s.items)),
		TotalBookings: int64(len(r.s.bookings)),
	}
	for _, item := range r.s.items {
		st.TotalQuantity += int64(item.Quantity)
		switch {
		case item.Quantity == 0:
			st.OutOfStock++
		case item.Quantity < lowStockThreshold:
			st.LowStock++
		}
	}
	return st, nil
}

// BookingRepository implements repositories.BookingRepository in memory.
type BookingRepository struct{ s *Store }

var _ repositories.BookingRepository = (*BookingRepository)(nil)

// Record holds the store lock for the whole read-check-write so concurrent
// bookings serialize like they do on the PostgreSQL row lock.
func (r *BookingRepository) Record(_ context.Context, itemID int64, apply repositories.ApplyFunc) (*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.items[itemID]
	if !ok {
		return nil, inventory.ErrItemNotFound
	}
	item := stored.Clone()
	b, err := apply(item)
	if err != nil {
		return nil, err
	}
	if item.Quantity < 0 {
		return nil, inventory.ErrInsufficientQuantity
	}

	r.s.nextBookingID++
	b.ID = r.s.nextBookingID
	b.ItemID = itemID
	r.s.items[itemID] = item.Clone()
	saved := *b
	saved.Item = nil
	r.s.bookings = append(r.s.bookings, &saved)

	b.Item = item
	return b, nil
}

func (r *BookingRepository) List(_ context.Context, itemID *int64) ([]*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Booking, 0, len(r.s.bookings))
	for i := len(r.s.bookings) - 1; i >= 0; i-- {
		b := r.s.bookings[i]
		if itemID != nil && b.ItemID != *itemID {
			continue
		}
		c := *b
		c.Item = r.s.items[b.ItemID].Clone()
		out = append(out, &c)
	}
	slices.SortStableFunc(out, func(a, b *models.Booking) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}
