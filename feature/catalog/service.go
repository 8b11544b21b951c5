package catalog

import (
	"context"
	"fmt"

	"catalog-manager/feature/catalog/models"

	"go.uber.org/zap"
)

// Service handles catalog operations.
type Service struct {
	store    *Store
	resolver *Resolver
	logger   *zap.Logger
}

// NewService creates a new catalog service.
func NewService(store *Store, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		resolver: NewResolver(store, logger),
		logger:   logger,
	}
}

// Store exposes the persistence layer for other features.
func (s *Service) Store() *Store {
	return s.store
}

// ListItems returns the owner's full catalog.
func (s *Service) ListItems(ctx context.Context, owner string) ([]models.Item, error) {
	return s.store.GetItems(ctx, owner)
}

// LookupItems searches the owner's catalog by name or SKU fragment.
func (s *Service) LookupItems(ctx context.Context, owner, query string) ([]models.Item, error) {
	return s.store.LookupItems(ctx, owner, query)
}

// CreateItem validates and stores a new item.
func (s *Service) CreateItem(ctx context.Context, owner string, item *models.Item) error {
	switch item.Type {
	case models.TypeProduct, models.TypeVariant, models.TypeIngredient:
	default:
		return fmt.Errorf("invalid item type %q", item.Type)
	}
	if item.Type == models.TypeVariant && item.ParentID == nil {
		return fmt.Errorf("variant items need a parent")
	}
	item.Owner = owner
	return s.store.InsertItem(ctx, item)
}

// AddRecipeLine validates and stores a new recipe line. The parent must be
// an existing composite item of the owner.
func (s *Service) AddRecipeLine(ctx context.Context, owner string, line *models.RecipeLine) error {
	parent, err := s.store.GetItem(ctx, owner, line.ParentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return fmt.Errorf("parent item %d not found", line.ParentID)
	}
	if !parent.IsComposite {
		return fmt.Errorf("item %d is not composite", line.ParentID)
	}
	if line.Quantity <= 0 {
		return fmt.Errorf("recipe line quantity must be positive")
	}
	line.Owner = owner
	return s.store.InsertRecipeLine(ctx, line)
}

// RemoveRecipeLine deletes one of the owner's recipe lines.
func (s *Service) RemoveRecipeLine(ctx context.Context, owner string, id int64) error {
	return s.store.DeleteRecipeLine(ctx, owner, id)
}

// RecalculateCosts resolves all composite costs for the owner.
func (s *Service) RecalculateCosts(ctx context.Context, owner string) (*Result, error) {
	return s.resolver.Recalculate(ctx, owner)
}
