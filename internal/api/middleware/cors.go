package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// CORS builds the cross-origin policy from CORS_ORIGINS (comma-separated;
// empty allows all origins, which is fine for local development).
func CORS() gin.HandlerFunc {
	allowed := []string{"*"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		allowed = strings.Split(origins, ",")
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowed,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	return func(ctx *gin.Context) {
		c.HandlerFunc(ctx.Writer, ctx.Request)
		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	}
}
