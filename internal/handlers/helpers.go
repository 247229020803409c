package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/middleware"
	"github.com/espacoviv/agendamento/internal/models"
)

func currentUserID(c *gin.Context) uint {
	return c.GetUint(middleware.ContextUserID)
}

func isAdmin(c *gin.Context) bool {
	return c.GetString(middleware.ContextUserRole) == models.UserTypeAdmin
}

// bindJSON answers invalid_request itself when the body does not bind.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", httperr.Message("invalid_request"))
		return false
	}
	return true
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_id", httperr.Message("invalid_id"))
		return 0, false
	}
	return uint(v), true
}

// optionalUintQuery returns nil when the query parameter is absent.
func optionalUintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_id", httperr.Message("invalid_id"))
		return nil, false
	}
	id := uint(v)
	return &id, true
}

func intValue(c *gin.Context, raw, code string) (int, bool) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		httperr.BadRequest(c, code, httperr.Message(code))
		return 0, false
	}
	return v, true
}

// intFromQuery falls back to def when the parameter is absent or not a number.
func intFromQuery(c *gin.Context, name string, def int) (int, bool) {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def, false
	}
	return v, true
}
