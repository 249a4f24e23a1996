// Package httpctx reads the identity values TokenAuthMiddleware stores on the
// gin context, so handlers never touch the raw token themselves.
package httpctx

import "github.com/gin-gonic/gin"

// CurrentUserID returns the signed-in user's id, or false when the request
// never passed the auth middleware.
func CurrentUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	uid, ok := val.(uint)
	return uid, ok
}

// IsAdminRequest reports whether the request belongs to an administrator.
func IsAdminRequest(c *gin.Context) bool {
	val, exists := c.Get("isAdmin")
	if !exists {
		return false
	}
	isAdmin, ok := val.(bool)
	return ok && isAdmin
}
