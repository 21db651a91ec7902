package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"stayos/internal/domain"
	"stayos/internal/handler"
	"stayos/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// authed is a tenant-scoped caller injected the way AuthMiddleware would.
type authed struct {
	tenantID uuid.UUID
	userID   uuid.UUID
	role     domain.UserRole
}

func newAuthed(role domain.UserRole) authed {
	return authed{tenantID: uuid.New(), userID: uuid.New(), role: role}
}

func (a authed) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyTenantID, a.tenantID)
		c.Set(middleware.ContextKeyUserID, a.userID)
		c.Set(middleware.ContextKeyRole, string(a.role))
		c.Next()
	}
}

// engine returns a router with the caller's auth context preinstalled.
func (a authed) engine() *gin.Engine {
	r := gin.New()
	r.Use(a.middleware())
	return r
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func do(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
