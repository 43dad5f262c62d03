// Package store holds the ProductStore implementations.
package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	product "github.com/ghuser/stocktrack/services/product/domain"
	"github.com/ghuser/stocktrack/services/product/domain/models"
	"github.com/ghuser/stocktrack/services/product/domain/repositories"
)

// MemoryStore keeps products in process memory. Data is lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]*models.Product
}

var _ repositories.ProductStore = (*MemoryStore)(nil)

// NewMemoryStore returns a store holding copies of seed.
func NewMemoryStore(seed ...*models.Product) *MemoryStore {
	s := &MemoryStore{products: make(map[string]*models.Product, len(seed))}
	for _, p := range seed {
		s.products[p.ID] = p.Clone()
	}
	return s
}

func (s *MemoryStore) List(_ context.Context) ([]*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p.Clone())
	}
	slices.SortFunc(out, func(a, b *models.Product) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return p.Clone(), nil
}

func (s *MemoryStore) Create(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p.Clone()
	return nil
}

func (s *MemoryStore) Update(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return product.ErrProductNotFound
	}
	s.products[p.ID] = p.Clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return product.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}
