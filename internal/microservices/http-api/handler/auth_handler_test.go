package handler

import (
	"context"
	"net/http"
	"testing"

	"yamdb/internal/microservices/http-api/service"
	"yamdb/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthService) ObtainToken(ctx context.Context, email, code string) (string, error) {
	args := m.Called(ctx, email, code)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*shared.AuthClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.AuthClaims), args.Error(1)
}

func TestToken_Success(t *testing.T) {
	svc := new(MockAuthService)
	router := setupRouter(t)
	router.POST("/token/", NewAuthHandler(svc).Token)
	svc.On("ObtainToken", mock.Anything, "a@x.com", "CODE1").Return("signed.jwt", nil)

	w := serve(router, http.MethodPost, "/token/", map[string]string{"email": "a@x.com", "confirmation_code": "CODE1"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"token": "signed.jwt"}, decodeBody(t, w))
	svc.AssertExpectations(t)
}

func TestToken_RejectedCode(t *testing.T) {
	svc := new(MockAuthService)
	router := setupRouter(t)
	router.POST("/token/", NewAuthHandler(svc).Token)
	svc.On("ObtainToken", mock.Anything, "a@x.com", "WRONG").Return("", service.ErrAuthenticationFailed)

	w := serve(router, http.MethodPost, "/token/", map[string]string{"email": "a@x.com", "confirmation_code": "WRONG"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, map[string]interface{}{"detail": DetailAuthFailed}, decodeBody(t, w))
	svc.AssertExpectations(t)
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc := new(MockAuthService)
	router := setupRouter(t)
	router.POST("/auth/email/", NewAuthHandler(svc).Register)

	w := serve(router, http.MethodPost, "/auth/email/", map[string]string{"email": "nope"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w), "email")
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRegister_Success(t *testing.T) {
	svc := new(MockAuthService)
	router := setupRouter(t)
	router.POST("/auth/email/", NewAuthHandler(svc).Register)
	svc.On("Register", mock.Anything, "a@x.com").Return(nil)

	w := serve(router, http.MethodPost, "/auth/email/", map[string]string{"email": "a@x.com"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"email": "a@x.com"}, decodeBody(t, w))
	svc.AssertExpectations(t)
}
