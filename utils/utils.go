package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler flattens any errors attached to the context into a single
// JSON error response
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   c.Errors.Last().Error(),
			})
		}
	}
}
