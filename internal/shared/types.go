package shared

import "github.com/golang-jwt/jwt/v5"

// TokenTypeAccess marks bearer tokens usable on API requests.
const TokenTypeAccess = "access"

// AuthClaims is the JWT payload issued by the token endpoint and checked by the auth middleware.
type AuthClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}
