package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
)

func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		fields := map[string]interface{}{
			"method":      strings.ToUpper(c.Request.Method),
			"path":        path,
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if id := c.GetString("request_id"); id != "" {
			fields["request_id"] = id
		}
		if len(c.Errors) > 0 {
			fields["error"] = c.Errors.Last().Error()
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields)
		case status >= 400:
			log.Warn("HTTP request", fields)
		default:
			log.Info("HTTP request", fields)
		}
	}
}
