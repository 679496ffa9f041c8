package utils

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler answers any request that panicked or accumulated errors with
// a generic 500, keeping handler code free of repetitive checks.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			for _, e := range c.Errors {
				log.Printf("[HTTP-ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, e.Err)
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
	}
}
