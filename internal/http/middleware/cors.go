package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows every origin; the API carries no cookies or credentials.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "X-Requested-With", headerRequestID},
		ExposeHeaders:   []string{headerRequestID, headerTraceID, "Content-Disposition"},
		MaxAge:          12 * time.Hour,
	})
}
