package api

import (
	"context"  // Ping deadlines
	"net/http" // HTTP status codes
	"time"     // Timeout

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// HealthCheck is one dependency probed by /healthz
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler reports 200 when every dependency answers, 503 otherwise
func HealthHandler(checks ...HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		for _, check := range checks {
			if err := check.Ping(ctx); err != nil {
				logrus.WithFields(logrus.Fields{"dependency": check.Name, "error": err.Error()}).Error("Health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "dependency": check.Name})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
