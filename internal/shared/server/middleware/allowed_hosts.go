package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"candidate-backend/internal/shared/server/respond"
)

// AllowedHosts rejects requests whose Host header is not on the allowlist.
// An empty list or a "*" entry disables the check.
func AllowedHosts(hosts []string) gin.HandlerFunc {
	allowed := make(map[string]struct{})
	wildcard := len(hosts) == 0
	for _, h := range hosts {
		trimmed := strings.ToLower(strings.TrimSpace(h))
		if trimmed == "*" {
			wildcard = true
			continue
		}
		if trimmed != "" {
			allowed[trimmed] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		if wildcard {
			c.Next()
			return
		}
		host := strings.ToLower(c.Request.Host)
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		if _, ok := allowed[host]; !ok {
			respond.Error(c, http.StatusBadRequest, "disallowed_host", "Invalid Host header", nil)
			return
		}
		c.Next()
	}
}
