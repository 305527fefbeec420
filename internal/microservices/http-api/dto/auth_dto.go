package dto

// Data Transfer Objects for the email-code authentication flow

// RegisterRequest: payload for requesting a confirmation code.
// The email doubles as the initial username, hence the username length cap.
type RegisterRequest struct {
	Email string `json:"email" binding:"required,email,max=150"`
}

// RegisterResponse: echoes the email; the code only travels by mail
type RegisterResponse struct {
	Email string `json:"email"`
}

// TokenRequest: payload for exchanging a confirmation code for a token
type TokenRequest struct {
	Email            string `json:"email" binding:"required,email"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// TokenResponse: the bearer token
type TokenResponse struct {
	Token string `json:"token"`
}
