package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"Yatube/cache"

	"github.com/gin-gonic/gin"
)

// The index page is cached whole: key is the route path plus query string,
// so each page number caches separately. There is deliberately no
// invalidation on writes; a new post only shows up once the entry expires.
const defaultPageCacheTTL = 20 * time.Second

func pageCacheTTL() time.Duration {
	if raw := os.Getenv("PAGE_CACHE_TTL_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultPageCacheTTL
}

func pageCacheKey(r *http.Request) string {
	return "page:" + r.URL.RequestURI()
}

// servePageFromCache replays the stored response bytes on a hit.
func (server *Server) servePageFromCache(c *gin.Context) bool {
	cached, err := cache.Get(context.Background(), pageCacheKey(c.Request))
	if err != nil || cached == "" {
		return false
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
	return true
}

// renderCachedPage writes the response and stores the exact bytes for the
// cache window.
func (server *Server) renderCachedPage(c *gin.Context, payload gin.H) {
	body, err := json.Marshal(payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to render page"})
		return
	}
	_ = cache.Set(context.Background(), pageCacheKey(c.Request), body, pageCacheTTL())
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
