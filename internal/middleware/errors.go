package middleware

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"asset_inventory/internal/apperr" // Error taxonomy

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

const unknownErrorMessage = "¡Ocurrió un error desconocido!"

// ErrorHandler renders the last error a handler attached with c.Error as {message}
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return // Nothing to render, or the response is already out
		}
		err := c.Errors.Last().Err

		status := http.StatusInternalServerError
		message := unknownErrorMessage
		var ae *apperr.Error
		if errors.As(err, &ae) {
			status = ae.Status
			message = ae.Message
		}
		if status >= http.StatusInternalServerError {
			logrus.WithFields(logrus.Fields{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
				"error":  err.Error(),
			}).Error("Request failed")
		}
		c.JSON(status, gin.H{"message": message})
	}
}

// NotFoundHandler answers requests no route matched
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "No se pudo encontrar esta ruta."})
}

// Recovery turns a panic into a 500 {message} response
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"panic":  recovered,
		}).Error("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": unknownErrorMessage})
	})
}
