package tracing

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/logging"
)

// HTTPMiddleware tags each request with a request ID and writes one access
// log line when it finishes.
func HTTPMiddleware(logger *logging.Logger) gin.HandlerFunc {
	access := logger.Named("http.access")
	return func(c *gin.Context) {
		requestID := resolveRequestID(c.GetHeader(RequestHeader))
		c.Request = c.Request.WithContext(WithRequestID(c.Request.Context(), requestID))
		c.Header(RequestHeader, requestID)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Error(c.Errors.Last()))
		}

		switch {
		case status >= 500:
			access.Error("Request failed", fields...)
		case status >= 400:
			access.Info("Request rejected", fields...)
		default:
			access.Debug("Request served", fields...)
		}
	}
}
