package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"time"     // Log timestamps

	"asset_inventory/internal/apperr" // Error taxonomy
	"asset_inventory/internal/domain" // Domain models
	"asset_inventory/internal/store"  // Persistence

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

const (
	msgBadCredentials = "Credenciales incorrectas."
	msgLoginFailed    = "El login ha fallado."
	msgRegisterFailed = "El registro ha fallado."
	msgUserExists     = "El usuario ya existe."
)

// PasswordHasher hashes and checks passwords
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
}

// TokenIssuer signs tokens for an identity
type TokenIssuer interface {
	Issue(id domain.Identity) (string, error)
}

// RegisterRequest is the public self-registration body
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=120"`          // Display name
	Email    Email  `json:"email" binding:"required,email,max=255"`   // Login email, normalised
	Password string `json:"password" binding:"required,min=6,max=72"` // Plaintext password
}

// SignupRequest is the admin-only account creation body
type SignupRequest struct {
	Name     string      `json:"name" binding:"required,max=120"`          // Display name
	Email    Email       `json:"email" binding:"required,email,max=255"`   // Login email, normalised
	Password string      `json:"password" binding:"required,min=6,max=72"` // Plaintext password
	Role     domain.Role `json:"role" binding:"required,role"`             // admin or user
}

// LoginRequest is the credential body
type LoginRequest struct {
	Email    Email  `json:"email" binding:"required"`    // Login email, normalised
	Password string `json:"password" binding:"required"` // Plaintext password
}

// RegisterResponse is returned on account creation
type RegisterResponse struct {
	UserID string `json:"userId"` // New user id
	Email  string `json:"email"`  // Normalised email
	Token  string `json:"token"`  // Bearer token for the new user
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	UserID string      `json:"userId"` // User id
	Email  string      `json:"email"`  // User email
	Token  string      `json:"token"`  // Bearer token
	Role   domain.Role `json:"role"`   // User role
}

// RegisterHandler lets anyone create a plain user account
func RegisterHandler(users store.Users, hasher PasswordHasher, tokens TokenIssuer, lc ListCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := bindJSON(c, &req); err != nil {
			fail(c, err)
			return
		}
		createAccount(c, users, hasher, tokens, lc, domain.User{
			Name:     req.Name,
			Email:    string(req.Email),
			Password: req.Password,
			Role:     domain.RoleUser, // Self-registration never grants admin
		})
	}
}

// SignupHandler lets an admin create an account with any role
func SignupHandler(users store.Users, hasher PasswordHasher, tokens TokenIssuer, lc ListCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if err := bindJSON(c, &req); err != nil {
			fail(c, err)
			return
		}
		createAccount(c, users, hasher, tokens, lc, domain.User{
			Name:     req.Name,
			Email:    string(req.Email),
			Password: req.Password,
			Role:     req.Role,
		})
	}
}

// createAccount hashes the password of u, stores it and answers with a fresh token
func createAccount(c *gin.Context, users store.Users, hasher PasswordHasher, tokens TokenIssuer, lc ListCache, u domain.User) {
	ctx := c.Request.Context()
	hash, err := hasher.Hash(u.Password) // Hash the password
	if err != nil {
		fail(c, apperr.Internal(msgRegisterFailed, err))
		return
	}
	u.Password = hash
	// Unique email index rejects duplicates
	if err := users.Create(ctx, &u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			fail(c, apperr.Duplicate(msgUserExists))
			return
		}
		fail(c, apperr.Internal(msgRegisterFailed, err))
		return
	}
	lc.invalidate(ctx, usersNamespace) // New user changes every list page
	token, err := tokens.Issue(u.Identity())
	if err != nil {
		fail(c, apperr.Internal(msgRegisterFailed, err))
		return
	}
	logrus.WithFields(logrus.Fields{
		"user_id":   u.ID,
		"role":      u.Role,
		"timestamp": time.Now().Format(time.RFC3339),
	}).Info("User registered")
	c.JSON(http.StatusCreated, RegisterResponse{UserID: u.ID, Email: u.Email, Token: token})
}

// LoginHandler authenticates a user and returns a token. Unknown emails and wrong
// passwords get the same answer.
func LoginHandler(users store.Users, hasher PasswordHasher, tokens TokenIssuer) gin.HandlerFunc {
	// Compared against when the email is unknown so both failure paths cost a bcrypt run
	dummyHash, err := hasher.Hash("not-a-real-password")
	if err != nil {
		logrus.WithError(err).Error("Building the login dummy hash failed, unknown emails will answer faster")
	}
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := bindJSON(c, &req); err != nil {
			fail(c, err)
			return
		}
		user, err := users.GetByEmail(c.Request.Context(), string(req.Email))
		if errors.Is(err, store.ErrNotFound) {
			_, _ = hasher.Verify(req.Password, dummyHash)
			fail(c, apperr.Forbidden(msgBadCredentials))
			return
		}
		if err != nil {
			fail(c, apperr.Internal(msgLoginFailed, err))
			return
		}
		// Compare provided password with stored hash
		ok, err := hasher.Verify(req.Password, user.Password)
		if err != nil {
			fail(c, apperr.Internal(msgLoginFailed, err))
			return
		}
		if !ok {
			logrus.WithField("user_id", user.ID).Warn("Login with wrong password")
			fail(c, apperr.Forbidden(msgBadCredentials))
			return
		}
		token, err := tokens.Issue(user.Identity()) // Generate JWT token
		if err != nil {
			fail(c, apperr.Internal(msgLoginFailed, err))
			return
		}
		c.JSON(http.StatusOK, LoginResponse{UserID: user.ID, Email: user.Email, Token: token, Role: user.Role})
	}
}
