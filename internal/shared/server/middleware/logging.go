package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-reviewer/internal/shared/telemetry"
)

// Logging emits one structured line per request. Handlers may set
// documentId, analysisId or targetRole on the context to enrich it.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
		}
		for _, key := range []string{"documentId", "analysisId", "targetRole"} {
			if v := c.GetString(key); v != "" {
				fields[key] = v
			}
		}
		telemetry.Info("request.complete", fields)
	}
}
