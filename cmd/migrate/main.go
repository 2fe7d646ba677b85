package main

import (
	"context" // Context for the seed step

	"asset_inventory/internal/config" // Custom import path (Config)
	"asset_inventory/internal/db"     // Custom import path (Database)
	"asset_inventory/internal/store"  // Persistence
	"asset_inventory/internal/utils"  // Password hashing

	"github.com/sirupsen/logrus" // Structured logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	if err := config.ConfigureLogger(cfg); err != nil {
		logrus.Fatalf("invalid logger configuration: %v", err)
	}

	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("%v", err)
	}

	// Admin-only signup needs a first admin
	created, err := db.SeedAdmin(context.Background(), store.NewUsers(gdb), utils.NewPasswordHasher(cfg.BcryptCost),
		cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logrus.Fatalf("failed to seed admin: %v", err)
	}
	if !created {
		logrus.Info("Admin seed skipped (ADMIN_EMAIL unset or already registered).")
	}
}
