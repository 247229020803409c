package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/espacoviv/agendamento/internal/httperr"
)

// Logger writes one line per request. Errors attached with c.Error are
// logged with the request id that the 500 body carries.
func Logger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", c.GetString(httperr.CorrelationKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}

		level := zapcore.InfoLevel
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
			level = zapcore.ErrorLevel
		} else if status >= 500 {
			level = zapcore.ErrorLevel
		}

		log.Check(level, "request").Write(fields...)
	}
}
