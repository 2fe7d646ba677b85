package middleware

import (
	"net/http" // HTTP status codes

	"asset_inventory/internal/domain" // Roles

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// RequireRoles lets through only callers whose verified role is one of roles.
// It must run after JWTAuthMiddleware.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c) // Identity set by the auth verifier
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Autenticación requerida."})
			return
		}
		if _, ok := allowed[id.Role]; !ok {
			logrus.WithFields(logrus.Fields{
				"user_id": id.ID,
				"role":    id.Role,
				"path":    c.FullPath(),
			}).Warn("Role gate rejected request")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Acceso restringido a administradores."})
			return
		}
		c.Next() // Role permitted
	}
}

// AdminOnlyMiddleware restricts a route group to admins
func AdminOnlyMiddleware() gin.HandlerFunc {
	return RequireRoles(domain.RoleAdmin)
}
