package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/espacoviv/agendamento/internal/auth"
	"github.com/espacoviv/agendamento/internal/domain/account"
	"github.com/espacoviv/agendamento/internal/httperr"
	"github.com/espacoviv/agendamento/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetUint(ContextUserID), "role": c.GetString(ContextUserRole)})
	})

	valid, _ := tokens.Issue(42, "massagista")
	other, _ := auth.NewTokenIssuer("other", time.Hour).Issue(42, "massagista")

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"missing", "", http.StatusUnauthorized, "missing_authorization_header"},
		{"not bearer", "Basic abc", http.StatusUnauthorized, "invalid_authorization_header"},
		{"garbage", "Bearer abc", http.StatusUnauthorized, "invalid_token"},
		{"wrong secret", "Bearer " + other, http.StatusUnauthorized, "invalid_token"},
		{"valid", "bearer " + valid, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := perform(r, req)
			if w.Code != tt.status {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			if tt.code != "" {
				var body httperr.HTTPError
				_ = json.Unmarshal(w.Body.Bytes(), &body)
				if body.Code != tt.code {
					t.Errorf("code = %q", body.Code)
				}
				return
			}
			var body struct {
				ID   uint   `json:"id"`
				Role string `json:"role"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			if body.ID != 42 || body.Role != "massagista" {
				t.Errorf("context = %+v", body)
			}
		})
	}
}

type stubUsers map[uint]*models.User

func (s stubUsers) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	if id == 500 {
		return nil, errors.New("db down")
	}
	u, ok := s[id]
	if !ok {
		return nil, account.ErrUserNotFound
	}
	return u, nil
}

func TestRequireActiveUser(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	users := stubUsers{
		1: {ID: 1, IsActive: true},
		2: {ID: 2, IsActive: false},
	}
	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens), RequireActiveUser(users), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		id     uint
		status int
		code   string
	}{
		{"active", 1, http.StatusOK, ""},
		{"deactivated", 2, http.StatusUnauthorized, "inactive_user"},
		{"deleted", 3, http.StatusUnauthorized, "invalid_token"},
		{"lookup fails", 500, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, _ := tokens.Issue(tt.id, "massagista")
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer "+tok)
			w := perform(r, req)
			if w.Code != tt.status {
				t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
			}
			if tt.code != "" {
				var body httperr.HTTPError
				_ = json.Unmarshal(w.Body.Bytes(), &body)
				if body.Code != tt.code {
					t.Errorf("code = %q", body.Code)
				}
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	r := gin.New()
	r.GET("/admin", AuthMiddleware(tokens), RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for role, want := range map[string]int{"admin": http.StatusOK, "massagista": http.StatusForbidden} {
		tok, _ := tokens.Issue(1, role)
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		if w := perform(r, req); w.Code != want {
			t.Errorf("%s: status = %d", role, w.Code)
		}
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://espacoviv.com"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://espacoviv.com")
	if w := perform(r, req); w.Header().Get("Access-Control-Allow-Origin") != "https://espacoviv.com" {
		t.Errorf("allowed origin not echoed")
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	if w := perform(r, req); w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Errorf("foreign origin allowed")
	}

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	if w := perform(r, req); w.Code != http.StatusNoContent {
		t.Errorf("preflight = %d", w.Code)
	}

	open := gin.New()
	open.Use(CORSMiddleware(nil))
	open.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	if w := perform(open, req); w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Errorf("nil list should allow any origin")
	}
}

func TestRequestIDAndRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Logger(zap.NewNop()), Recovery(zap.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(httperr.CorrelationKey)) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := perform(r, req)
	if w.Body.String() != "abc-123" || w.Header().Get(RequestIDHeader) != "abc-123" {
		t.Errorf("incoming id not kept: %q", w.Body.String())
	}

	w = perform(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var body httperr.HTTPError
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Code != "internal_error" || body.CorrelationID == "" || body.CorrelationID != w.Header().Get(RequestIDHeader) {
		t.Errorf("body = %+v", body)
	}
}
