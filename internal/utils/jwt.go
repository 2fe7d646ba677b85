package utils

import (
	"errors" // Error values
	"fmt"    // Error wrapping
	"time"   // Time for token expiration

	"asset_inventory/internal/domain" // Identity and roles

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// ErrInvalidToken is returned for tokens that fail verification
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenConfig is the process-wide signing configuration
type TokenConfig struct {
	Secret string        // HMAC secret
	TTL    time.Duration // Token lifetime
}

// JWT Claims
type Claims struct {
	UserID               string      `json:"userId"` // Custom claim for user ID
	Email                string      `json:"email"`  // Custom claim for email
	Role                 domain.Role `json:"role"`   // Custom claim for role
	jwt.RegisteredClaims             // Standard JWT claims
}

// Identity returns the caller identity carried by the claims
func (c *Claims) Identity() domain.Identity {
	return domain.Identity{ID: c.UserID, Email: c.Email, Role: c.Role}
}

// TokenIssuer signs and verifies bearer tokens with a static secret
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer validates cfg and returns an issuer
func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token issuer: empty signing secret")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour // Default lifetime
	}
	return &TokenIssuer{secret: []byte(cfg.Secret), ttl: cfg.TTL, now: time.Now}, nil
}

// Issue creates a signed token for the given identity
func (t *TokenIssuer) Issue(id domain.Identity) (string, error) {
	now := t.now()
	claims := Claims{
		UserID: id.ID,
		Email:  id.Email,
		Role:   id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	signed, err := token.SignedString(t.secret)                // Sign the token with the secret
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature and expiry and returns the claims
func (t *TokenIssuer) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return t.secret, nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: missing identity", ErrInvalidToken)
	}
	return claims, nil
}
