package domain

import (
	"time" // Timestamps

	"github.com/google/uuid" // UUID generation for primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// Asset Model
type Asset struct {
	ID               string     `gorm:"type:char(36);primaryKey" json:"id"`          // Primary key (UUID)
	Description      string     `gorm:"size:255;not null;index" json:"description"`  // What the asset is
	Category         string     `gorm:"size:120;not null;index" json:"category"`     // Inventory category
	AssignedEmployee *string    `gorm:"size:255" json:"assigned_employee,omitempty"` // Free-text assignee
	AssignedDate     *time.Time `json:"assigned_date,omitempty"`                     // When it was assigned
	Version          int        `gorm:"not null;default:1" json:"-"`                 // Optimistic concurrency counter
	CreatedAt        time.Time  `json:"createdAt"`                                   // Creation timestamp
	UpdatedAt        time.Time  `json:"updatedAt"`                                   // Last update timestamp
}

// BeforeCreate assigns a UUID to new assets
func (a *Asset) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString() // Generate document-style identifier
	}
	if a.Version == 0 {
		a.Version = 1 // First revision
	}
	return nil
}
