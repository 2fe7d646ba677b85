// Package store persists users and assets. Handlers depend on the Users and
// Assets interfaces; the gorm implementations back them in production.
package store

import (
	"context" // Request-scoped queries
	"errors"  // Sentinel errors

	"asset_inventory/internal/domain" // Domain models

	"github.com/go-sql-driver/mysql" // MySQL error codes
	"gorm.io/gorm"                   // GORM ORM library
)

var (
	// ErrNotFound means no record has the requested id or email.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicate means a unique column such as email is already taken.
	ErrDuplicate = errors.New("store: duplicate")
	// ErrStale means the record changed since it was read.
	ErrStale = errors.New("store: stale write")
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// Page selects a window of a result set.
type Page struct {
	Offset int
	Limit  int
}

// AssetFilter narrows asset listings. Empty fields do not filter.
type AssetFilter struct {
	Description string // case-insensitive substring
	Category    string // case-insensitive substring
	Page
}

// Users persists user accounts.
type Users interface {
	// Create inserts u, assigning its id. Returns ErrDuplicate on a taken email.
	Create(ctx context.Context, u *domain.User) error
	// GetByID returns the user with id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (domain.User, error)
	// GetByEmail expects an already normalised email.
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	// List returns one page of users, password hashes left blank, and the total count.
	List(ctx context.Context, p Page) ([]domain.User, int64, error)
	// Update writes u if its Version still matches the stored one and bumps Version.
	Update(ctx context.Context, u *domain.User) error
	// Delete removes the user with id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// Assets persists inventory assets.
type Assets interface {
	// Create inserts a, assigning its id.
	Create(ctx context.Context, a *domain.Asset) error
	// GetByID returns the asset with id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (domain.Asset, error)
	// List returns one page of assets matching f and the total match count.
	List(ctx context.Context, f AssetFilter) ([]domain.Asset, int64, error)
	// Update writes a if its Version still matches the stored one and bumps Version.
	Update(ctx context.Context, a *domain.Asset) error
	// Delete removes the asset with id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// isDuplicate recognises unique-index violations, translated by gorm or raw from the driver.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// translate maps driver errors onto the store sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicate(err):
		return ErrDuplicate
	default:
		return err
	}
}

// missingOrStale tells a lost conditional write apart from a missing row.
func missingOrStale(ctx context.Context, db *gorm.DB, model any, id string) error {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrStale
}
