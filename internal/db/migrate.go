package db

import (
	"context" // Context for seed lookups
	"errors"  // Error matching
	"fmt"     // Error wrapping

	"asset_inventory/internal/domain" // Importing domain models
	"asset_inventory/internal/store"  // Persistence

	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logging
)

// Hasher hashes the seed admin password
type Hasher interface {
	Hash(plain string) (string, error)
}

// Open connects to MySQL with driver errors translated into gorm's sentinels
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,                                // Duplicate keys become gorm.ErrDuplicatedKey
		Logger:         logger.Default.LogMode(logger.Warn), // Only slow queries and errors
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(&domain.User{}, &domain.Asset{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}

// SeedAdmin creates the first admin account. It reports false when email is empty
// or already registered, so running it twice is harmless.
func SeedAdmin(ctx context.Context, users store.Users, hasher Hasher, name, email, password string) (bool, error) {
	email = domain.NormalizeEmail(email) // Stored the way every other path stores it
	if email == "" || password == "" {
		return false, nil // Seeding not configured
	}
	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		return false, nil // Already there
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, fmt.Errorf("look up admin: %w", err)
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return false, err
	}
	admin := domain.User{Name: name, Email: email, Password: hash, Role: domain.RoleAdmin}
	if err := users.Create(ctx, &admin); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return false, nil // Lost a race with another seeder
		}
		return false, fmt.Errorf("create admin: %w", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": admin.ID, "email": admin.Email}).Info("Admin account seeded")
	return true, nil
}
