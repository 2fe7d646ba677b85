package store

import (
	"context" // Request-scoped queries
	"fmt"     // Error wrapping
	"strings" // LIKE pattern escaping
	"time"    // Update timestamps

	"asset_inventory/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// GormAssets is the gorm-backed Assets store.
type GormAssets struct {
	db *gorm.DB
}

// NewAssets returns a asset store on db
func NewAssets(db *gorm.DB) *GormAssets {
	return &GormAssets{db: db}
}

// Create inserts a asset, the BeforeCreate hook assigns its id
func (s *GormAssets) Create(ctx context.Context, a *domain.Asset) error {
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("create asset: %w", translate(err))
	}
	return nil
}

// GetByID fetches a asset by id
func (s *GormAssets) GetByID(ctx context.Context, id string) (domain.Asset, error) {
	var a domain.Asset
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return domain.Asset{}, fmt.Errorf("get asset: %w", translate(err))
	}
	return a, nil
}

// List counts and pages assets in creation order
func (s *GormAssets) List(ctx context.Context, f AssetFilter) ([]domain.Asset, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&domain.Asset{}).Scopes(assetFilter(f)).Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("count assets: %w", err)
	}
	assets := []domain.Asset{}
	if total == 0 {
		return assets, 0, nil
	}
	err = s.db.WithContext(ctx).
		Scopes(assetFilter(f)).
		Order("created_at asc, id asc").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&assets).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list assets: %w", err)
	}
	return assets, total, nil
}

// Update writes the asset only if its version is unchanged
func (s *GormAssets) Update(ctx context.Context, a *domain.Asset) error {
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&domain.Asset{}).
		Where("id = ? AND version = ?", a.ID, a.Version).
		Updates(map[string]any{
			"description":       a.Description,
			"category":          a.Category,
			"assigned_employee": a.AssignedEmployee,
			"assigned_date":     a.AssignedDate,
			"version":           a.Version + 1,
			"updated_at":        now,
		})
	if res.Error != nil {
		return fmt.Errorf("update asset: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		err := missingOrStale(ctx, s.db, &domain.Asset{}, a.ID)
		return fmt.Errorf("update asset: %w", err)
	}
	a.Version++
	a.UpdatedAt = now
	return nil
}

// Delete removes a asset by id
func (s *GormAssets) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Asset{})
	if res.Error != nil {
		return fmt.Errorf("delete asset: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete asset: %w", ErrNotFound)
	}
	return nil
}

// assetFilter applies the case-insensitive substring filters of f.
func assetFilter(f AssetFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Description != "" {
			db = db.Where("LOWER(description) LIKE ?", containsPattern(f.Description))
		}
		if f.Category != "" {
			db = db.Where("LOWER(category) LIKE ?", containsPattern(f.Category))
		}
		return db
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching term anywhere, wildcards in term taken literally.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
