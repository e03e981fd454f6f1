package model

import "github.com/golang-jwt/jwt/v5"

// JWTClaims carries only the user id; the auth middleware re-reads the
// account on every request so role changes and blocks take effect
// without waiting for token expiry.
type JWTClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
