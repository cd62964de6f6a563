package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"animehi.app/anime-api-gateway/config/environment_variables"
)

// CacheControl stamps every response with the CDN freshness policy.
func CacheControl() gin.HandlerFunc {
	sMaxAge := environment_variables.EnvironmentVariables.S_MAXAGE
	staleWhileRevalidate := environment_variables.EnvironmentVariables.STALE_WHILE_REVALIDATE
	value := fmt.Sprintf("s-maxage=%d, stale-while-revalidate=%d", sMaxAge, staleWhileRevalidate)

	return func(c *gin.Context) {
		c.Writer.Header().Set("Cache-Control", value)
		c.Next()
	}
}
