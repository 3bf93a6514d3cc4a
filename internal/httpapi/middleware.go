package httpapi

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

const headerWebhookSecret = "x-vapi-secret"

// WebhookAuth verifies the shared webhook secret when enabled.
//
// Verification is deliberately flag-gated: the secret may be configured
// ahead of the sender actually signing requests, and flipping the flag is
// the explicit rollout step. When disabled this middleware is a no-op.
func WebhookAuth(secret string, enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		got := c.GetHeader(headerWebhookSecret)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook secret"})
			return
		}
		c.Next()
	}
}
