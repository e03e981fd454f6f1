package auth

import (
	"errors"
	"time"

	"github.com/DhanunjayTheDev/ecombazaar/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers malformed, forged and expired tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// Service issues and validates the session tokens used by both the
// Authorization header and the session cookie.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service. Tokens live 30 days, matching the
// session cookie lifetime.
func NewService(secret string) *Service {
	return &Service{secret: []byte(secret), ttl: 30 * 24 * time.Hour}
}

// TTL is the token lifetime, used to size the session cookie.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// GenerateToken signs a token carrying the user id.
func (s *Service) GenerateToken(userID string) (string, error) {
	claims := &model.JWTClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken verifies the signature and expiry and returns the user
// id the token was issued for.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.JWTClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}
