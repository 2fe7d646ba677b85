package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"asset_inventory/internal/domain" // Identity type
	"asset_inventory/internal/utils"  // JWT claims

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// IdentityKey is the gin context key holding the verified domain.Identity
const IdentityKey = "identity"

// TokenParser verifies a raw bearer token
type TokenParser interface {
	Parse(token string) (*utils.Claims, error)
}

// JWTAuthMiddleware validates bearer tokens and stores the caller identity
func JWTAuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Header("WWW-Authenticate", `Bearer`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Autenticación requerida."})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")) // Extract the token string
		claims, err := tokens.Parse(tokenStr)                                    // Verify signature and expiry
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":  c.FullPath(),
				"error": err.Error(),
			}).Warn("Token verification failed")
			c.Header("WWW-Authenticate", `Bearer error="invalid_token"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token inválido o expirado."})
			return
		}
		c.Set(IdentityKey, claims.Identity()) // Store identity in context
		c.Next()                              // Proceed to the next handler
	}
}

// IdentityFrom returns the identity stored by JWTAuthMiddleware
func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return domain.Identity{}, false
	}
	id, ok := v.(domain.Identity)
	return id, ok
}
