// Package services implements the demo product use cases.
package services

import (
	"context"
	"fmt"
	"strings"

	product "github.com/ghuser/stocktrack/services/product/domain"
	"github.com/ghuser/stocktrack/services/product/domain/models"
	"github.com/ghuser/stocktrack/services/product/domain/repositories"
)

// ProductService wraps a ProductStore with validation and the stats rule.
type ProductService struct {
	store             repositories.ProductStore
	lowStockThreshold int
}

// NewProductService returns a ProductService. Products with stock below
// lowStockThreshold count as low stock.
func NewProductService(store repositories.ProductStore, lowStockThreshold int) *ProductService {
	return &ProductService{store: store, lowStockThreshold: lowStockThreshold}
}

// CreateProductInput carries the fields of a new product.
type CreateProductInput struct {
	Name            string
	Description     string
	Stock           int
	StorageLocation *models.StorageLocation
}

// UpdateProductInput is a partial update; nil fields are left unchanged.
// ClearLocation removes the storage location.
type UpdateProductInput struct {
	Name            *string
	Description     *string
	Stock           *int
	StorageLocation *models.StorageLocation
	ClearLocation   bool
}

// ProductStats is the product dashboard summary.
type ProductStats struct {
	TotalProducts int
	LowStock      int
}

func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	products, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	p, err := models.NewProduct(in.Name, in.Description, in.Stock, in.StorageLocation)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", product.ErrInvalidProduct, err)
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in UpdateProductInput) (*models.Product, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	switch {
	case in.ClearLocation:
		p.StorageLocation = nil
	case in.StorageLocation != nil:
		loc := *in.StorageLocation
		p.StorageLocation = &loc
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", product.ErrInvalidProduct, err)
	}
	p.Touch()

	if err := s.store.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

// Stats counts all products and those below the low-stock threshold.
func (s *ProductService) Stats(ctx context.Context) (*ProductStats, error) {
	products, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}
	st := &ProductStats{TotalProducts: len(products)}
	for _, p := range products {
		if p.Stock < s.lowStockThreshold {
			st.LowStock++
		}
	}
	return st, nil
}
