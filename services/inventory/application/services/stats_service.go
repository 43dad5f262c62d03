package services

import (
	"context"
	"fmt"

	"github.com/ghuser/stocktrack/services/inventory/domain/models"
	"github.com/ghuser/stocktrack/services/inventory/domain/repositories"
)

// StatsService computes dashboard statistics.
type StatsService struct {
	repo              repositories.ItemRepository
	lowStockThreshold int
}

// NewStatsService returns a StatsService counting items below lowStockThreshold as low stock.
func NewStatsService(repo repositories.ItemRepository, lowStockThreshold int) *StatsService {
	return &StatsService{repo: repo, lowStockThreshold: lowStockThreshold}
}

// Get returns item and booking totals.
func (s *StatsService) Get(ctx context.Context) (*models.Stats, error) {
	st, err := s.repo.Stats(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return st, nil
}
