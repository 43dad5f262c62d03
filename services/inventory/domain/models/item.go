package models

import (
	"fmt"
	"time"
)

// Item is the core aggregate for this bounded context.
type Item struct {
	ID        int64 // assigned by the store on Save
	Name      ItemName
	Quantity  int // never negative
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewItem constructs an unsaved Item. ID is zero until the repository assigns one.
func NewItem(name ItemName, quantity int, location string) (*Item, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative, got %d", quantity)
	}
	now := time.Now().UTC()
	return &Item{
		Name:      name,
		Quantity:  quantity,
		Location:  location,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Touch refreshes UpdatedAt after a mutation.
func (i *Item) Touch() {
	i.UpdatedAt = time.Now().UTC()
}

// Clone returns a shallow copy so callers can mutate without aliasing stored state.
func (i *Item) Clone() *Item {
	c := *i
	return &c
}
