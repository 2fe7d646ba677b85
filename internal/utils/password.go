package utils

import (
	"errors" // Error matching
	"fmt"    // Error wrapping

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// PasswordHasher hashes and verifies passwords with bcrypt
type PasswordHasher struct {
	Cost int // bcrypt work factor
}

// NewPasswordHasher returns a hasher with the given cost, 12 when out of range
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 12
	}
	return &PasswordHasher{Cost: cost}
}

// Hash returns a salted bcrypt hash of plain
func (h *PasswordHasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plain matches hash. A mismatch is (false, nil);
// a malformed hash is an error.
func (h *PasswordHasher) Verify(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("verifying password: %w", err)
	}
}
