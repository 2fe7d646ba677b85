package store

import (
	"context" // Request-scoped queries
	"fmt"     // Error wrapping
	"time"    // Update timestamps

	"asset_inventory/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// GormUsers is the gorm-backed Users store.
type GormUsers struct {
	db *gorm.DB
}

// NewUsers returns a user store on db
func NewUsers(db *gorm.DB) *GormUsers {
	return &GormUsers{db: db}
}

// Create inserts a user, the BeforeCreate hook assigns its id
func (s *GormUsers) Create(ctx context.Context, u *domain.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", translate(err))
	}
	return nil
}

// GetByID fetches a user by id
func (s *GormUsers) GetByID(ctx context.Context, id string) (domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", translate(err))
	}
	return u, nil
}

// GetByEmail fetches a user by normalised email
func (s *GormUsers) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return domain.User{}, fmt.Errorf("get user by email: %w", translate(err))
	}
	return u, nil
}

// List counts and pages users in creation order
func (s *GormUsers) List(ctx context.Context, p Page) ([]domain.User, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	users := []domain.User{}
	if total == 0 {
		return users, 0, nil
	}
	err := s.db.WithContext(ctx).
		Omit("password").
		Order("created_at asc, id asc").
		Offset(p.Offset).
		Limit(p.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// Update writes the user only if its version is unchanged
func (s *GormUsers) Update(ctx context.Context, u *domain.User) error {
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND version = ?", u.ID, u.Version).
		Updates(map[string]any{
			"name":       u.Name,
			"email":      u.Email,
			"password":   u.Password,
			"role":       u.Role,
			"version":    u.Version + 1,
			"updated_at": now,
		})
	if res.Error != nil {
		return fmt.Errorf("update user: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		err := missingOrStale(ctx, s.db, &domain.User{}, u.ID)
		return fmt.Errorf("update user: %w", err)
	}
	u.Version++
	u.UpdatedAt = now
	return nil
}

// Delete removes a user by id
func (s *GormUsers) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete user: %w", ErrNotFound)
	}
	return nil
}
