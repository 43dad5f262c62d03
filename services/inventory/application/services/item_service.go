package services

import (
	"context"
	"fmt"
	"strings"

	inventory "github.com/ghuser/stocktrack/services/inventory/domain"
	"github.com/ghuser/stocktrack/services/inventory/domain/models"
	"github.com/ghuser/stocktrack/services/inventory/domain/repositories"
	domainsvcs "github.com/ghuser/stocktrack/services/inventory/domain/services"
)

// ItemService orchestrates item CRUD and listing.
// Event publishing is handled by the repository layer (outbox pattern).
type ItemService struct {
	repo repositories.ItemRepository
}

// NewItemService returns an ItemService backed by repo.
func NewItemService(repo repositories.ItemRepository) *ItemService {
	return &ItemService{repo: repo}
}

// CreateItemInput carries the fields of a new item. Name and location are trimmed.
type CreateItemInput struct {
	Name     string
	Quantity int
	Location string
}

// UpdateItemInput is a partial update; nil fields are left unchanged.
type UpdateItemInput struct {
	Name     *string
	Quantity *int
	Location *string
}

// ListItemsInput holds raw query values; they are parsed and validated by List.
type ListItemsInput struct {
	Search    string
	Location  string
	SortBy    string
	SortOrder string
}

// Create validates and persists an Item. The repository publishes ItemCreatedEvent.
func (s *ItemService) Create(ctx context.Context, in CreateItemInput) (*models.Item, error) {
	name, err := models.NewItemName(in.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", inventory.ErrInvalidItem, err)
	}

	item, err := models.NewItem(name, in.Quantity, strings.TrimSpace(in.Location))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", inventory.ErrInvalidItem, err)
	}

	if err := domainsvcs.ValidateItem(item); err != nil {
		return nil, fmt.Errorf("%w: %w", inventory.ErrInvalidItem, err)
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	return item, nil
}

// Get returns the item with id or ErrItemNotFound.
func (s *ItemService) Get(ctx context.Context, id int64) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// List returns items matching in. Unknown sort fields or orders yield ErrInvalidQuery.
func (s *ItemService) List(ctx context.Context, in ListItemsInput) ([]*models.Item, error) {
	q, err := ParseItemQuery(in)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// ParseItemQuery validates raw listing parameters.
func ParseItemQuery(in ListItemsInput) (repositories.ItemQuery, error) {
	sortBy, err := repositories.ParseSortField(in.SortBy)
	if err != nil {
		return repositories.ItemQuery{}, fmt.Errorf("%w: %w", inventory.ErrInvalidQuery, err)
	}
	order, err := repositories.ParseSortOrder(in.SortOrder)
	if err != nil {
		return repositories.ItemQuery{}, fmt.Errorf("%w: %w", inventory.ErrInvalidQuery, err)
	}
	return repositories.ItemQuery{
		Search:    strings.TrimSpace(in.Search),
		Location:  in.Location,
		SortBy:    sortBy,
		SortOrder: order,
	}, nil
}

// Update applies a partial update and refreshes UpdatedAt. Quantity may be
// overwritten directly (stock correction) but never below zero.
func (s *ItemService) Update(ctx context.Context, id int64, in UpdateItemInput) (*models.Item, error) {
	var name models.ItemName
	if in.Name != nil {
		n, err := models.NewItemName(*in.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", inventory.ErrInvalidItem, err)
		}
		name = n
	}

	item, err := s.repo.Update(ctx, id, func(item *models.Item) error {
		if in.Name != nil {
			item.Name = name
		}
		if in.Quantity != nil {
			item.Quantity = *in.Quantity
		}
		if in.Location != nil {
			item.Location = strings.TrimSpace(*in.Location)
		}
		if err := domainsvcs.ValidateItem(item); err != nil {
			return fmt.Errorf("%w: %w", inventory.ErrInvalidItem, err)
		}
		item.Touch()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

// Delete removes an item and its bookings. Returns ErrItemNotFound if absent.
func (s *ItemService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// Count returns the number of stored items.
func (s *ItemService) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}
