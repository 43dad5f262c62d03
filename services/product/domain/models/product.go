package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxNameLength        = 255
	MaxDescriptionLength = 2000
	MinPosition          = 1
	MaxPosition          = 9
)

// Shelf heights and cabinet sides a product can be stored at.
const (
	HeightTop    = "top"
	HeightMiddle = "middle"
	HeightBottom = "bottom"

	SideLeft  = "left"
	SideRight = "right"
)

// StorageLocation places a product on the cabinet grid.
type StorageLocation struct {
	Position int    `json:"position"`
	Height   string `json:"height"`
	Side     string `json:"side"`
}

// Validate checks the location is on the grid.
func (l StorageLocation) Validate() error {
	if l.Position < MinPosition || l.Position > MaxPosition {
		return fmt.Errorf("position must be between %d and %d", MinPosition, MaxPosition)
	}
	switch l.Height {
	case HeightTop, HeightMiddle, HeightBottom:
	default:
		return fmt.Errorf("height must be one of %s, %s, %s", HeightTop, HeightMiddle, HeightBottom)
	}
	if l.Side != SideLeft && l.Side != SideRight {
		return fmt.Errorf("side must be %s or %s", SideLeft, SideRight)
	}
	return nil
}

// Product is a demo catalogue entry. It is serialized as-is by the Redis store.
type Product struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Stock           int              `json:"stock"`
	StorageLocation *StorageLocation `json:"storageLocation,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// NewProduct returns a validated product with a fresh ID.
func NewProduct(name, description string, stock int, loc *StorageLocation) (*Product, error) {
	now := time.Now().UTC()
	p := &Product{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(name),
		Description:     strings.TrimSpace(description),
		Stock:           stock,
		StorageLocation: loc,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks field constraints.
func (p *Product) Validate() error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, errors.New("name is required"))
	} else if utf8.RuneCountInString(p.Name) > MaxNameLength {
		errs = append(errs, fmt.Errorf("name must be at most %d characters", MaxNameLength))
	}
	if utf8.RuneCountInString(p.Description) > MaxDescriptionLength {
		errs = append(errs, fmt.Errorf("description must be at most %d characters", MaxDescriptionLength))
	}
	if p.Stock < 0 {
		errs = append(errs, errors.New("stock must not be negative"))
	}
	if p.StorageLocation != nil {
		if err := p.StorageLocation.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Touch bumps UpdatedAt.
func (p *Product) Touch() {
	p.UpdatedAt = time.Now().UTC()
}

// Clone returns a deep copy.
func (p *Product) Clone() *Product {
	c := *p
	if p.StorageLocation != nil {
		loc := *p.StorageLocation
		c.StorageLocation = &loc
	}
	return &c
}
