package repositories

import (
	"context"

	"github.com/ghuser/stocktrack/services/product/domain/models"
)

// ProductStore persists demo products. Implementations return
// domain.ErrProductNotFound for unknown IDs.
type ProductStore interface {
	// List returns all products ordered by creation time.
	List(ctx context.Context) ([]*models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
}
