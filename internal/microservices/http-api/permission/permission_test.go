package permission

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"yamdb/internal/microservices/http-api/models"
)

func TestRolePredicates(t *testing.T) {
	tests := []struct {
		name      string
		user      *models.User
		admin     bool
		moderator bool
	}{
		{"anonymous", nil, false, false},
		{"user", &models.User{Role: models.RoleUser}, false, false},
		{"moderator", &models.User{Role: models.RoleModerator}, false, true},
		{"admin", &models.User{Role: models.RoleAdmin}, true, false},
		{"superuser with user role", &models.User{Role: models.RoleUser, IsSuperuser: true}, true, false},
		{"unknown role", &models.User{Role: models.Role("owner")}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.admin, IsAdmin(tt.user))
			assert.Equal(t, tt.moderator, IsModerator(tt.user))
		})
	}
}

func TestCanModify(t *testing.T) {
	author := &models.User{ID: "author", Role: models.RoleUser}
	other := &models.User{ID: "other", Role: models.RoleUser}
	moderator := &models.User{ID: "mod", Role: models.RoleModerator}
	admin := &models.User{ID: "admin", Role: models.RoleAdmin}

	assert.True(t, CanModify(author, "author"))
	assert.False(t, CanModify(other, "author"))
	assert.True(t, CanModify(moderator, "author"))
	assert.True(t, CanModify(admin, "author"))
	assert.False(t, CanModify(nil, "author"))
	assert.False(t, IsAuthor(&models.User{}, ""))
}

func TestPolicies(t *testing.T) {
	user := &models.User{ID: "u", Role: models.RoleUser}
	admin := &models.User{ID: "a", Role: models.RoleAdmin}

	tests := []struct {
		name   string
		policy Policy
		user   *models.User
		method string
		want   bool
	}{
		{"any anonymous write", AllowAny, nil, http.MethodPost, true},
		{"authenticated anonymous", Authenticated, nil, http.MethodGet, false},
		{"authenticated user", Authenticated, user, http.MethodPatch, true},
		{"admin only user read", AdminOnly, user, http.MethodGet, false},
		{"admin only admin", AdminOnly, admin, http.MethodDelete, true},
		{"read only anonymous read", AdminOrReadOnly, nil, http.MethodGet, true},
		{"read only anonymous write", AdminOrReadOnly, nil, http.MethodPost, false},
		{"read only user patch", AdminOrReadOnly, user, http.MethodPatch, false},
		{"read only admin write", AdminOrReadOnly, admin, http.MethodPost, true},
		{"review anonymous read", ReviewAndComment, nil, http.MethodGet, true},
		{"review anonymous write", ReviewAndComment, nil, http.MethodPost, false},
		{"review user write", ReviewAndComment, user, http.MethodPost, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy(tt.user, tt.method))
		})
	}
}
