package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-manager/core/utils"
	"catalog-manager/feature/catalog/models"

	"gorm.io/gorm"
)

// Row caps keep a runaway catalog from blowing up batch runs.
const (
	maxItems       = 5000
	maxRecipeLines = 20000
	maxLookupRows  = 800
)

// Store is the owner-scoped persistence layer for catalog rows.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new catalog store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for migrations.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// GetItems loads all of an owner's items, capped at 5000 rows.
func (s *Store) GetItems(ctx context.Context, owner string) ([]models.Item, error) {
	var items []models.Item
	err := s.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("id").
		Limit(maxItems).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	return items, nil
}

// GetItem loads a single item by id within the owner's catalog. Returns
// nil when no row matches.
func (s *Store) GetItem(ctx context.Context, owner string, id int64) (*models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).
		Where("owner = ? AND id = ?", owner, id).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load item %d: %w", id, err)
	}
	return &item, nil
}

// GetRecipeLines loads all of an owner's recipe lines, capped at 20000 rows.
func (s *Store) GetRecipeLines(ctx context.Context, owner string) ([]models.RecipeLine, error) {
	var lines []models.RecipeLine
	err := s.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("id").
		Limit(maxRecipeLines).
		Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe lines: %w", err)
	}
	return lines, nil
}

// LookupItems searches an owner's items by name or SKU fragment, capped at
// 800 rows.
func (s *Store) LookupItems(ctx context.Context, owner, query string) ([]models.Item, error) {
	var items []models.Item
	pattern := "%" + strings.TrimSpace(query) + "%"
	err := s.db.WithContext(ctx).
		Where("owner = ? AND (name LIKE ? OR sku LIKE ?)", owner, pattern, pattern).
		Order("name").
		Limit(maxLookupRows).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up items: %w", err)
	}
	return items, nil
}

// InsertItem stores a new item and fills its generated id.
func (s *Store) InsertItem(ctx context.Context, item *models.Item) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// UpdateItem writes the given column values on one of the owner's items.
func (s *Store) UpdateItem(ctx context.Context, owner string, id int64, values map[string]any) error {
	result := s.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("owner = ? AND id = ?", owner, id).
		Updates(values)
	if result.Error != nil {
		return fmt.Errorf("failed to update item %d: %w", id, result.Error)
	}
	return nil
}

// InsertRecipeLine stores a new recipe line.
func (s *Store) InsertRecipeLine(ctx context.Context, line *models.RecipeLine) error {
	if line.Unit != models.UnitWeightGrams && line.Unit != models.UnitCount {
		return fmt.Errorf("invalid recipe line unit %q", line.Unit)
	}
	if err := s.db.WithContext(ctx).Create(line).Error; err != nil {
		return fmt.Errorf("failed to insert recipe line: %w", err)
	}
	return nil
}

// DeleteRecipeLine removes one of the owner's recipe lines.
func (s *Store) DeleteRecipeLine(ctx context.Context, owner string, id int64) error {
	result := s.db.WithContext(ctx).
		Where("owner = ? AND id = ?", owner, id).
		Delete(&models.RecipeLine{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete recipe line %d: %w", id, result.Error)
	}
	return nil
}

// GetParameter returns the raw value of an owner's parameter, or empty
// string when unset.
func (s *Store) GetParameter(ctx context.Context, owner, key string) (string, error) {
	var param models.Parameter
	err := s.db.WithContext(ctx).
		Where("owner = ? AND `key` = ?", owner, key).
		First(&param).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load parameter %s: %w", key, err)
	}
	return param.Value, nil
}

// GetFloatParameter returns an owner's parameter parsed as a float. Unset
// or unparsable values yield the fallback; only storage failures error.
func (s *Store) GetFloatParameter(ctx context.Context, owner, key string, fallback float64) (float64, error) {
	raw, err := s.GetParameter(ctx, owner, key)
	if err != nil {
		return 0, err
	}
	if v := utils.ToFloat(raw); v != nil {
		return *v, nil
	}
	return fallback, nil
}
