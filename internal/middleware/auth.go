package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/espacoviv/agendamento/internal/auth"
	"github.com/espacoviv/agendamento/internal/domain/account"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/models"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

func AuthMiddleware(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		userID, role, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			abortUnauthorized(c, "invalid_token")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

type UserLookup interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// RequireActiveUser must run after AuthMiddleware. A token stays valid
// until it expires, so the account is checked on every request.
func RequireActiveUser(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := users.GetUserByID(c.Request.Context(), c.GetUint(ContextUserID))
		if errors.Is(err, account.ErrUserNotFound) {
			abortUnauthorized(c, "invalid_token")
			return
		}
		if err != nil {
			httperr.Respond(c, err)
			c.Abort()
			return
		}
		if !u.IsActive {
			abortUnauthorized(c, "inactive_user")
			return
		}
		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != role {
			httperr.Forbidden(c, "forbidden", httperr.Message("forbidden"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code string) {
	c.Header("WWW-Authenticate", "Bearer")
	httperr.Unauthorized(c, code, httperr.Message(code))
	c.Abort()
}
