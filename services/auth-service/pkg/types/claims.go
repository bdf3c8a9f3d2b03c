package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of the session token set as the auth cookie.
type SessionClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// PasswordResetClaims is the payload of the short-lived token minted after a
// one-time code has been verified. Possession of a valid token is the
// precondition for updating the credential.
type PasswordResetClaims struct {
	Phone string `json:"phone"`
	jwt.RegisteredClaims
}
