package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminOnlyMiddleware gates group management behind the admin flag loaded by
// TokenAuthMiddleware. Runs after it in the chain; a missing flag means the
// requester is not signed in at all.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		flag, _ := c.Get("isAdmin")
		isAdmin, ok := flag.(bool)
		if !ok || !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
