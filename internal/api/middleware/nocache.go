package middleware

import "github.com/gin-gonic/gin"

// NoCacheMiddleware disables response caching on every route so stale
// portfolio or balance data is never served from a browser cache.
func NoCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Writer.Header().Set("Pragma", "no-cache")
		c.Writer.Header().Set("Expires", "0")

		c.Next()
	}
}
