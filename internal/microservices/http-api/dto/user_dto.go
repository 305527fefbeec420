package dto

import "yamdb/internal/microservices/http-api/models"

// UserRequest is the body of user create and update calls. Nil fields are left unchanged.
type UserRequest struct {
	Username  *string      `json:"username" binding:"omitempty,max=150,username"`
	Email     *string      `json:"email" binding:"omitempty,max=254,email"`
	FirstName *string      `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string      `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string      `json:"bio"`
	Role      *models.Role `json:"role" binding:"omitempty,oneof=user moderator admin"`
}

// Validate checks presence rules; full is set for POST and PUT.
func (r UserRequest) Validate(full bool) map[string]string {
	errs := map[string]string{}
	requireText(errs, "username", r.Username, full)
	requireText(errs, "email", r.Email, full)
	return errs
}

type UserResponse struct {
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Username  string      `json:"username"`
	Bio       string      `json:"bio"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
}

func FromModelToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Bio:       u.Bio,
		Email:     u.Email,
		Role:      u.Role,
	}
}

func FromModelsToUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, FromModelToUserResponse(&users[i]))
	}
	return out
}
