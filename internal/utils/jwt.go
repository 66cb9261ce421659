// internal/utils/jwt.go
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// AccessTokenClaims are the claims the backend puts in the accessToken cookie.
// The console never holds the signing secret, so tokens are decoded, not verified.
type AccessTokenClaims struct {
	AdminID interface{} `json:"id,omitempty"`
	Email   string      `json:"email,omitempty"`
	Role    string      `json:"role,omitempty"`
	jwt.RegisteredClaims
}

var ErrTokenWithoutExpiry = errors.New("token has no exp claim")

func ParseAccessToken(tokenString string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// TokenExpiry returns the exp claim of an unverified token.
func TokenExpiry(tokenString string) (time.Time, error) {
	claims, err := ParseAccessToken(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrTokenWithoutExpiry
	}
	return claims.ExpiresAt.Time, nil
}
