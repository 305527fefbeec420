package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/permission"
	"yamdb/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stubAuth struct {
	claims *shared.AuthClaims
}

func (s stubAuth) Register(context.Context, string) error { return nil }

func (s stubAuth) ObtainToken(context.Context, string, string) (string, error) { return "", nil }

func (s stubAuth) ValidateToken(token string) (*shared.AuthClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return s.claims, nil
}

type stubUsers struct {
	users map[string]*models.User
}

func (s stubUsers) Create(context.Context, *models.User) error { return nil }

func (s stubUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s stubUsers) FindByUsername(context.Context, string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s stubUsers) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s stubUsers) List(context.Context, string, int, int) ([]models.User, int64, error) {
	return nil, 0, nil
}

func (s stubUsers) Update(context.Context, *models.User) error { return nil }

func (s stubUsers) Delete(context.Context, string) error { return nil }

func newEngine(userID string, users map[string]*models.User, policy permission.Policy) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := stubAuth{claims: &shared.AuthClaims{UserID: userID, Type: shared.TokenTypeAccess}}
	r.Use(Authenticate(auth, stubUsers{users: users}))
	r.Any("/resource", Require(policy), func(c *gin.Context) {
		if u := CurrentUser(c); u != nil {
			c.String(http.StatusOK, u.ID)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	return r
}

func serve(r *gin.Engine, method, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/resource", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	inactive := false
	users := map[string]*models.User{
		"u1":  {ID: "u1", Role: models.RoleUser},
		"off": {ID: "off", Role: models.RoleUser, IsActive: &inactive},
	}

	tests := []struct {
		name   string
		userID string
		header string
		code   int
		body   string
	}{
		{"anonymous", "u1", "", http.StatusOK, "anonymous"},
		{"valid token", "u1", "Bearer good", http.StatusOK, "u1"},
		{"wrong scheme", "u1", "Token good", http.StatusUnauthorized, DetailTokenNotValid},
		{"invalid token", "u1", "Bearer bad", http.StatusUnauthorized, DetailTokenNotValid},
		{"deleted user", "gone", "Bearer good", http.StatusUnauthorized, DetailUserNotFound},
		{"inactive user", "off", "Bearer good", http.StatusUnauthorized, DetailUserInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newEngine(tt.userID, users, permission.AllowAny), http.MethodGet, tt.header)
			assert.Equal(t, tt.code, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestRequire(t *testing.T) {
	users := map[string]*models.User{
		"u1":    {ID: "u1", Role: models.RoleUser},
		"admin": {ID: "admin", Role: models.RoleAdmin},
	}

	w := serve(newEngine("u1", users, permission.AdminOrReadOnly), http.MethodPost, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), DetailNotAuthenticated)

	w = serve(newEngine("u1", users, permission.AdminOrReadOnly), http.MethodPost, "Bearer good")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), DetailPermissionDenied)

	w = serve(newEngine("admin", users, permission.AdminOrReadOnly), http.MethodPost, "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(newEngine("u1", users, permission.AdminOrReadOnly), http.MethodGet, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Body.String(), 36)
}

type stubLimiter struct {
	allowed bool
	err     error
}

func (s stubLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return s.allowed, 1500 * time.Millisecond, s.err
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	run := func(mw gin.HandlerFunc) *httptest.ResponseRecorder {
		r := gin.New()
		r.POST("/", mw, func(c *gin.Context) { c.Status(http.StatusOK) })
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		return w
	}

	assert.Equal(t, http.StatusOK, run(RateLimit(nil, "auth", zap.NewNop())).Code)
	assert.Equal(t, http.StatusOK, run(RateLimit(stubLimiter{allowed: true}, "auth", zap.NewNop())).Code)
	assert.Equal(t, http.StatusOK, run(RateLimit(stubLimiter{err: errors.New("redis down")}, "auth", zap.NewNop())).Code)

	w := run(RateLimit(stubLimiter{allowed: false}, "auth", zap.NewNop()))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
}
