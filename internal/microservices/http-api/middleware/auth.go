package middleware

import (
	"errors"
	"net/http"
	"strings"

	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/permission"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ContextUserKey   = "user"
	ContextUserIDKey = "userID"
	ContextRoleKey   = "role"
)

const (
	DetailNotAuthenticated = "Authentication credentials were not provided."
	DetailTokenNotValid    = "Given token not valid for any token type"
	DetailPermissionDenied = "You do not have permission to perform this action."
	DetailUserInactive     = "User is inactive"
	DetailUserNotFound     = "User not found"
)

// Authenticate resolves an optional bearer token to the current user.
// Requests without an Authorization header continue anonymously; a header
// that does not carry a valid token for a live account is rejected.
func Authenticate(authService service.AuthService, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		// format: "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortDetail(c, http.StatusUnauthorized, DetailTokenNotValid)
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			abortDetail(c, http.StatusUnauthorized, DetailTokenNotValid)
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortDetail(c, http.StatusUnauthorized, DetailUserNotFound)
				return
			}
			_ = c.Error(err)
			abortDetail(c, http.StatusInternalServerError, "Internal server error.")
			return
		}
		if !user.CanAuthenticate() {
			abortDetail(c, http.StatusUnauthorized, DetailUserInactive)
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextRoleKey, user.Role)
		c.Next()
	}
}

// Require enforces policy: anonymous callers get 401, signed-in ones 403.
func Require(policy permission.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if policy(user, c.Request.Method) {
			c.Next()
			return
		}
		if user == nil {
			c.Header("WWW-Authenticate", `Bearer realm="api"`)
			abortDetail(c, http.StatusUnauthorized, DetailNotAuthenticated)
			return
		}
		abortDetail(c, http.StatusForbidden, DetailPermissionDenied)
	}
}

// CurrentUser returns the authenticated user or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func abortDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}
