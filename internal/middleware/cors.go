package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsHeaders = "Authorization, Content-Type, Accept, X-Request-Id"
)

// CORS allows the browser editor to call the API from another origin. An
// empty allowlist means any origin; otherwise only listed origins are echoed
// back and everything else gets no CORS headers at all.
func CORS(allowlist []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowlist))
	for _, origin := range allowlist {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			allowed[trimmed] = struct{}{}
		}
	}
	return func(c *gin.Context) {
		if origin := resolveOrigin(c.GetHeader("Origin"), allowed); origin != "" {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", corsMethods)
			h.Set("Access-Control-Allow-Headers", corsHeaders)
			if origin != "*" {
				h.Set("Vary", "Origin")
			}
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func resolveOrigin(origin string, allowed map[string]struct{}) string {
	if len(allowed) == 0 {
		return "*"
	}
	if _, ok := allowed[origin]; ok {
		return origin
	}
	return ""
}
