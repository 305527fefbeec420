// Package permission holds the role and ownership predicates that gate the API.
package permission

import (
	"net/http"

	"yamdb/internal/microservices/http-api/models"
)

// Policy decides whether user may call an endpoint with method.
// A nil user is an anonymous request.
type Policy func(user *models.User, method string) bool

// IsSafeMethod reports whether method only reads.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// IsAdmin is true for the admin role and for superusers whatever their role.
func IsAdmin(user *models.User) bool {
	if user == nil {
		return false
	}
	if user.IsSuperuser {
		return true
	}
	switch user.Role {
	case models.RoleAdmin:
		return true
	case models.RoleModerator, models.RoleUser:
		return false
	}
	return false
}

func IsModerator(user *models.User) bool {
	if user == nil {
		return false
	}
	switch user.Role {
	case models.RoleModerator:
		return true
	case models.RoleAdmin, models.RoleUser:
		return false
	}
	return false
}

// IsAuthor reports whether user wrote the object owned by authorID.
func IsAuthor(user *models.User, authorID string) bool {
	return user != nil && user.ID != "" && user.ID == authorID
}

// CanModify is the object-level rule for editing or deleting a review or comment.
func CanModify(user *models.User, authorID string) bool {
	return IsAuthor(user, authorID) || IsAdmin(user) || IsModerator(user)
}

func AllowAny(*models.User, string) bool {
	return true
}

func Authenticated(user *models.User, _ string) bool {
	return user != nil
}

func AdminOnly(user *models.User, _ string) bool {
	return IsAdmin(user)
}

func AdminOrReadOnly(user *models.User, method string) bool {
	return IsSafeMethod(method) || IsAdmin(user)
}

// ReviewAndComment lets anyone read and any signed-in user write.
// Ownership of an existing object is checked separately with CanModify.
func ReviewAndComment(user *models.User, method string) bool {
	return IsSafeMethod(method) || user != nil
}
