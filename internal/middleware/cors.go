package middleware

import (
	"net/http" // HTTP status codes
	"slices"   // Origin lookup

	"github.com/gin-gonic/gin" // Gin web framework
)

const (
	corsMethods = "GET, HEAD, PUT, POST, PATCH, DELETE"
	corsHeaders = "Content-Type, Authorization, X-Request-ID"
)

// CORS allows browser calls from the listed origins, with credentials. An origin of
// "*" allows any origin. Preflight requests are answered here with 204.
func CORS(origins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (slices.Contains(origins, origin) || slices.Contains(origins, "*")) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", corsMethods)
			c.Header("Access-Control-Allow-Headers", corsHeaders)
			c.Header("Access-Control-Max-Age", "86400")
			c.Header("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent) // Preflight
			return
		}
		c.Next()
	}
}

// maxBodyBytes caps request bodies at 1 MB
const maxBodyBytes = 1 << 20

// BodyLimit makes reads past maxBodyBytes fail, which the JSON binder reports as invalid input
func BodyLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		}
		c.Next()
	}
}
