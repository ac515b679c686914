package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers from handler panics and renders the standard error
// envelope instead of an empty 500.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		msg := "An unexpected error occurred"
		switch v := recovered.(type) {
		case string:
			msg = v
		case error:
			msg = v.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": msg,
			},
		})
		c.Abort()
	})
}
