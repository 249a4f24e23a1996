package controllers

import (
	"Yatube/auth"
	httpctx "Yatube/utils/httpctx"

	"github.com/gin-gonic/gin"
)

// requestUserID resolves the requester's identity on routes that work for
// both anonymous and signed-in visitors. The auth middleware's context value
// wins when present; otherwise the token is inspected directly and failure
// just means "anonymous".
func requestUserID(c *gin.Context) (uint, bool) {
	if uid, ok := httpctx.CurrentUserID(c); ok {
		return uid, true
	}
	uid, err := auth.ExtractTokenID(c.Request)
	if err != nil || uid == 0 {
		return 0, false
	}
	return uid, true
}
