// Package services contains stateless domain services for the inventory bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ghuser/stocktrack/services/inventory/domain/models"
)

const (
	maxLocationLength = 255
	// MaxQuantity is the largest quantity the items table can hold.
	MaxQuantity = 1<<31 - 1
)

// ValidateName enforces business rules for ItemName beyond the structural
// constraints enforced by the ItemName constructor (length 1–255).
//
// Business rules:
//   - No leading or trailing whitespace
//   - No control characters (Unicode category Cc)
//   - Must not be only whitespace characters
func ValidateName(name models.ItemName) error {
	s := name.String()

	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("item name must not be only whitespace")
	}

	if s != strings.TrimSpace(s) {
		return fmt.Errorf("item name must not have leading or trailing whitespace")
	}

	if containsControl(s) {
		return fmt.Errorf("item name must not contain control characters")
	}

	return nil
}

// ValidateLocation accepts any non-blank label up to 255 characters. The
// canonical "Cabinet N, side shelf" form is preferred but not required.
func ValidateLocation(location string) error {
	if strings.TrimSpace(location) == "" {
		return fmt.Errorf("location is required")
	}
	if utf8.RuneCountInString(location) > maxLocationLength {
		return fmt.Errorf("location must not exceed %d characters", maxLocationLength)
	}
	if containsControl(location) {
		return fmt.Errorf("location must not contain control characters")
	}
	return nil
}

// ValidateQuantity rejects negative and out-of-range quantities.
func ValidateQuantity(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must be 0 or greater, got %d", quantity)
	}
	if quantity > MaxQuantity {
		return fmt.Errorf("quantity must not exceed %d", MaxQuantity)
	}
	return nil
}

// ValidateItem performs cross-field validation on an Item before it is persisted.
func ValidateItem(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}
	if err := ValidateName(item.Name); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}
	if err := ValidateQuantity(item.Quantity); err != nil {
		return fmt.Errorf("invalid quantity: %w", err)
	}
	if err := ValidateLocation(item.Location); err != nil {
		return fmt.Errorf("invalid location: %w", err)
	}
	return nil
}

func containsControl(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}
