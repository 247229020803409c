package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/espacoviv/agendamento/internal/httperr"
)

const RequestIDHeader = "X-Request-ID"

const maxRequestIDLen = 64

// RequestID keeps a sane incoming X-Request-ID or generates one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" || len(rid) > maxRequestIDLen {
			rid = uuid.NewString()
		}

		c.Set(httperr.CorrelationKey, rid)
		c.Header(RequestIDHeader, rid)
		c.Next()
	}
}
