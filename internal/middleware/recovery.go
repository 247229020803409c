package middleware

import (
	"fmt"
	"runtime"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/espacoviv/agendamento/internal/httperr"
)

func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				var stack [4096]byte
				n := runtime.Stack(stack[:], false)

				log.Error("panic recovered",
					zap.String("request_id", c.GetString(httperr.CorrelationKey)),
					zap.String("panic", fmt.Sprintf("%v", r)),
					zap.ByteString("stack", stack[:n]),
				)

				httperr.Internal(c, "internal_error", httperr.Message("internal_error"))
				c.Abort()
			}
		}()
		c.Next()
	}
}
