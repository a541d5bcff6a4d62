package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CronAuth guards the external-trigger endpoint with a shared bearer secret.
// An empty secret leaves the endpoint open (development mode).
func CronAuth(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if secret == "" {
			ctx.Next()
			return
		}

		header := ctx.GetHeader("Authorization")
		expected := "Bearer " + secret

		if subtle.ConstantTimeCompare([]byte(header), []byte(expected)) != 1 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Unauthorized",
			})
			return
		}

		ctx.Next()
	}
}
