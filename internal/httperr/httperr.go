package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CorrelationKey is the gin context key holding the request id.
const CorrelationKey = "requestID"

type HTTPError struct {
	Code          string `json:"error_code"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Unavailable(c *gin.Context, code, message string) {
	Write(c, http.StatusServiceUnavailable, code, message)
}

// Internal answers a generic 500 carrying the request id so the logged
// error can be found.
func Internal(c *gin.Context, code, message string) {
	c.JSON(http.StatusInternalServerError, HTTPError{
		Code:          code,
		Message:       message,
		CorrelationID: c.GetString(CorrelationKey),
	})
}

// Respond translates err into the JSON error body. Business errors keep
// their status; anything else is attached to the context for the request
// logger and answered with a 500.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		status := be.Status
		if status == 0 {
			status = http.StatusBadRequest
		}
		Write(c, status, be.Code, Message(be.Code))
		return
	}

	_ = c.Error(err)
	Internal(c, "internal_error", Message("internal_error"))
}
