package domain

import (
	"strings" // Email normalisation
	"time"    // Timestamps

	"github.com/google/uuid" // UUID generation for primary keys
	"gorm.io/gorm"           // GORM ORM library
)

// User Model
type User struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`                 // Primary key (UUID)
	Name      string    `gorm:"size:120" json:"name"`                               // Display name
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`         // Unique, lower-cased email
	Password  string    `gorm:"not null" json:"-"`                                  // Hashed password, never serialized
	Role      Role      `gorm:"type:varchar(16);not null;default:user" json:"role"` // Role: user or admin
	Version   int       `gorm:"not null;default:1" json:"-"`                        // Optimistic concurrency counter
	CreatedAt time.Time `json:"createdAt"`                                          // Creation timestamp
	UpdatedAt time.Time `json:"updatedAt"`                                          // Last update timestamp
}

// BeforeCreate assigns a UUID and the default role to new users
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString() // Generate document-style identifier
	}
	if u.Role == "" {
		u.Role = RoleUser // Default role
	}
	if u.Version == 0 {
		u.Version = 1 // First revision
	}
	return nil
}

// Identity returns the {id, email, role} triple carried by issued tokens
func (u User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}

// NormalizeEmail trims and lower-cases an email address, the form emails are stored in
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
