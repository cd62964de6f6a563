package middleware

import (
	"encoding/base64"

	"github.com/gin-gonic/gin"

	"animehi.app/anime-api-gateway/app/domain/auth"
)

// ClientFingerprint derives the rate-limit counter key for a request, scoped
// to a bucket prefix. Authenticated clients are tracked by user identity so
// quota follows them across networks; anonymous clients by a hash of their
// forwarded address and user agent. Always produces a value.
func ClientFingerprint(c *gin.Context, prefix string) string {
	if userID, ok := auth.GetUserIDFromContext(c); ok && userID != "" {
		return prefix + ":user:" + userID
	}

	forwardedFor := c.GetHeader("X-Forwarded-For")
	if forwardedFor == "" {
		forwardedFor = c.GetHeader("X-Real-IP")
	}
	if forwardedFor == "" {
		forwardedFor = c.Request.RemoteAddr
	}
	userAgent := c.GetHeader("User-Agent")
	if userAgent == "" {
		userAgent = "unknown"
	}

	fingerprint := base64.StdEncoding.EncodeToString([]byte(forwardedFor + ":" + userAgent))
	return prefix + ":ip:" + fingerprint
}
