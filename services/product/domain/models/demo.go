package models

import (
	"time"

	"github.com/google/uuid"
)

// DemoProducts returns the catalogue a fresh store is seeded with.
func DemoProducts(now time.Time) []*Product {
	seed := []struct {
		name, description string
		stock             int
	}{
		{"Wireless Headphones", "Premium wireless headphones with noise cancellation", 15},
		{"Ergonomic Office Chair", "Comfortable office chair with lumbar support", 8},
		{"Smart Watch", "Fitness tracker and smartwatch with heart rate monitor", 22},
		{"Cotton T-Shirt", "Medium-sized cotton t-shirt in black", 45},
		{"Organic Coffee Beans", "500g of organic, fair-trade coffee beans", 30},
	}

	out := make([]*Product, len(seed))
	for i, s := range seed {
		// distinct timestamps keep List order equal to seed order
		ts := now.UTC().Add(time.Duration(i) * time.Millisecond)
		out[i] = &Product{
			ID:          uuid.NewString(),
			Name:        s.name,
			Description: s.description,
			Stock:       s.stock,
			CreatedAt:   ts,
			UpdatedAt:   ts,
		}
	}
	return out
}
