package api

import (
	"errors"   // Error matching
	"fmt"      // Cache key formatting
	"net/http" // HTTP status codes

	"asset_inventory/internal/apperr" // Error taxonomy
	"asset_inventory/internal/domain" // Domain models
	"asset_inventory/internal/store"  // Persistence

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

const (
	msgInvalidUserID   = "ID de usuario no válido."
	msgUserNotFound    = "Usuario no encontrado."
	msgUserChanged     = "El usuario fue modificado por otra solicitud, por favor intenta nuevamente."
	msgUsersFetchError = "No se pudo recuperar los usuarios."
	msgUserUpdateError = "No se pudo actualizar el usuario."
	msgUserDeleteError = "No se pudo eliminar el usuario."
)

// UserListResponse is one page of users
type UserListResponse struct {
	Users       []domain.User `json:"users"`       // Users on this page, no password hashes
	TotalPages  int           `json:"totalPages"`  // ceil(total / limit)
	CurrentPage int           `json:"currentPage"` // Requested page
}

// UpdateUserRequest is a partial user update; absent fields are left untouched
type UpdateUserRequest struct {
	Name     *string      `json:"name" binding:"omitempty,min=1,max=120"`    // New display name
	Email    *Email       `json:"email" binding:"omitempty,email,max=255"`   // New email
	Password *string      `json:"password" binding:"omitempty,min=6,max=72"` // New plaintext password
	Role     *domain.Role `json:"role" binding:"omitempty,role"`             // New role
}

// ListUsersHandler returns one page of users
func ListUsersHandler(users store.Users, lc ListCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		p := parsePagination(c) // page and limit from the query
		var resp UserListResponse
		key, hit := lc.load(ctx, usersNamespace, fmt.Sprintf("page=%d:limit=%d", p.Page, p.Limit), &resp)
		if hit {
			c.JSON(http.StatusOK, resp) // Serve cached page
			return
		}
		list, total, err := users.List(ctx, p.window())
		if err != nil {
			fail(c, apperr.Internal(msgUsersFetchError, err))
			return
		}
		resp = UserListResponse{Users: list, TotalPages: p.totalPages(total), CurrentPage: p.Page}
		lc.save(ctx, key, resp)
		c.JSON(http.StatusOK, resp)
	}
}

// GetUserHandler returns a single user
func GetUserHandler(users store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseID(c, msgInvalidUserID)
		if err != nil {
			fail(c, err)
			return
		}
		user, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			fail(c, userStoreError(err, msgUsersFetchError))
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// UpdateUserHandler merges the supplied fields into a user; the password is re-hashed only when given
func UpdateUserHandler(users store.Users, hasher PasswordHasher, lc ListCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id, err := parseID(c, msgInvalidUserID)
		if err != nil {
			fail(c, err)
			return
		}
		var req UpdateUserRequest // Bind JSON request to struct
		if err := bindJSON(c, &req); err != nil {
			fail(c, err)
			return
		}
		user, err := users.GetByID(ctx, id)
		if err != nil {
			fail(c, userStoreError(err, msgUserUpdateError))
			return
		}
		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Email != nil {
			user.Email = string(*req.Email)
		}
		if req.Role != nil {
			user.Role = *req.Role
		}
		if req.Password != nil {
			hash, err := hasher.Hash(*req.Password)
			if err != nil {
				fail(c, apperr.Internal(msgUserUpdateError, err))
				return
			}
			user.Password = hash
		}
		// Conditional write against the version we read
		if err := users.Update(ctx, &user); err != nil {
			fail(c, userStoreError(err, msgUserUpdateError))
			return
		}
		lc.invalidate(ctx, usersNamespace)
		logrus.WithFields(logrus.Fields{
			"user_id":          user.ID,
			"password_changed": req.Password != nil,
			"role":             user.Role,
		}).Info("User updated")
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// DeleteUserHandler removes a user
func DeleteUserHandler(users store.Users, lc ListCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id, err := parseID(c, msgInvalidUserID)
		if err != nil {
			fail(c, err)
			return
		}
		if err := users.Delete(ctx, id); err != nil {
			fail(c, userStoreError(err, msgUserDeleteError))
			return
		}
		lc.invalidate(ctx, usersNamespace)
		logrus.WithField("user_id", id).Info("User deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Usuario eliminado exitosamente."})
	}
}

// userStoreError maps store sentinels onto client-facing errors
func userStoreError(err error, internalMsg string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperr.NotFound(msgUserNotFound)
	case errors.Is(err, store.ErrStale):
		return apperr.Stale(msgUserChanged)
	case errors.Is(err, store.ErrDuplicate):
		return apperr.Duplicate(msgUserExists)
	default:
		return apperr.Internal(internalMsg, err)
	}
}
