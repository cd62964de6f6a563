package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"animehi.app/anime-api-gateway/config/environment_variables"
)

func CORS() gin.HandlerFunc {
	allowedHosts := strings.Split(environment_variables.EnvironmentVariables.CORS_ALLOWED_ORIGINS, ",")
	return func(c *gin.Context) {
		host := c.Request.Header.Get("Origin")
		isValidHost := false
		for _, allowedHost := range allowedHosts {
			if allowedHost != "" && (allowedHost == host || allowedHost == "*") {
				isValidHost = true
				break
			}
		}
		if isValidHost {
			c.Writer.Header().Set("Access-Control-Allow-Origin", host)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-ANI-CACHE-EXPIRY")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
