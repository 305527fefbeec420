package service

import (
	"context"
	"fmt"
	"testing"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func rolePtr(r models.Role) *models.Role { return &r }

func TestUserCreate_DefaultsRole(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound)
	users.On("FindByEmail", mock.Anything, "bob@x.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Create(context.Background(), dto.UserRequest{
		Username: strPtr("bob"),
		Email:    strPtr("bob@x.com"),
		Bio:      strPtr("hi"),
	})

	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "hi", user.Bio)
	users.AssertExpectations(t)
}

func TestUserCreate_ReportsEveryTakenField(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("FindByUsername", mock.Anything, "bob").Return(&models.User{ID: "1"}, nil)
	users.On("FindByEmail", mock.Anything, "bob@x.com").Return(&models.User{ID: "2"}, nil)

	_, err := svc.Create(context.Background(), dto.UserRequest{Username: strPtr("bob"), Email: strPtr("bob@x.com")})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"username": "A user with that username already exists.",
		"email":    "user with this email already exists.",
	}, verr.Fields)
	assert.ErrorIs(t, err, ErrUsernameTaken)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserCreate_RaceOnInsert(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound).Once()
	users.On("FindByEmail", mock.Anything, "bob@x.com").Return(nil, gorm.ErrRecordNotFound).Once()
	users.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("create user: %w", gorm.ErrDuplicatedKey))
	users.On("FindByUsername", mock.Anything, "bob").Return(&models.User{ID: "other"}, nil).Once()
	users.On("FindByEmail", mock.Anything, "bob@x.com").Return(nil, gorm.ErrRecordNotFound).Once()

	_, err := svc.Create(context.Background(), dto.UserRequest{Username: strPtr("bob"), Email: strPtr("bob@x.com")})

	assert.ErrorIs(t, err, ErrUsernameTaken)
	users.AssertExpectations(t)
}

func TestUserUpdateProfile_RoleOnlyForAdmins(t *testing.T) {
	tests := []struct {
		name string
		me   *models.User
		want models.Role
	}{
		{"user cannot promote self", &models.User{ID: "1", Username: "bob", Email: "b@x.com", Role: models.RoleUser}, models.RoleUser},
		{"moderator cannot promote self", &models.User{ID: "1", Username: "bob", Email: "b@x.com", Role: models.RoleModerator}, models.RoleModerator},
		{"admin may change role", &models.User{ID: "1", Username: "bob", Email: "b@x.com", Role: models.RoleAdmin}, models.RoleModerator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			svc := NewUserService(users)
			stored := *tt.me

			users.On("FindByID", mock.Anything, "1").Return(&stored, nil)
			users.On("FindByUsername", mock.Anything, "bob").Return(&stored, nil)
			users.On("FindByEmail", mock.Anything, "b@x.com").Return(&stored, nil)
			users.On("Update", mock.Anything, &stored).Return(nil)

			user, err := svc.UpdateProfile(context.Background(), tt.me, dto.UserRequest{
				Role: rolePtr(models.RoleModerator),
				Bio:  strPtr("new bio"),
			})

			require.NoError(t, err)
			assert.Equal(t, tt.want, user.Role)
			assert.Equal(t, "new bio", user.Bio)
		})
	}
}

func TestUserGetAndDelete_NotFound(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
	users.On("Delete", mock.Anything, "ghost").Return(gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "ghost"), ErrNotFound)
}

func TestUserList_PassesPage(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewUserService(users)

	users.On("List", mock.Anything, "bo", 5, 10).Return([]models.User{{Username: "bob"}}, int64(11), nil)

	list, total, err := svc.List(context.Background(), "bo", dto.Page{Limit: 5, Offset: 10})

	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, int64(11), total)
}
