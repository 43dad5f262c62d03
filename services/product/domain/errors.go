package domain

import "errors"

// Sentinel errors for the product domain. Use errors.Is() to check these.
var (
	// ErrProductNotFound indicates the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidProduct indicates a product field violates domain constraints.
	ErrInvalidProduct = errors.New("invalid product")
)
