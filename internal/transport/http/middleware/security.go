package middleware

import "github.com/gin-gonic/gin"

// Security sets hardening headers. Catalog responses carry bearer tokens
// and seller data, so nothing is cacheable by intermediaries.
func Security() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")
		c.Next()
	}
}
