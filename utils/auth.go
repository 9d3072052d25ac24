package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// TokenClaims are the fields read from an auth service access token
type TokenClaims struct {
	UserID string
	Email  string
}

// GenerateToken signs an HS256 token the way the auth service does. Used by
// tests and the dev tooling.
func GenerateToken(userID, email, secret string, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["sub"] = userID
	claims["email"] = email
	claims["role"] = "authenticated"
	claims["exp"] = time.Now().Add(ttl).Unix()
	return token.SignedString([]byte(secret))
}

// ValidateToken validates an access token and returns its subject
func ValidateToken(tokenString, secret string) (*TokenClaims, error) {
	if secret == "" {
		return nil, errors.New("jwt secret not configured")
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("invalid user ID in token")
	}
	email, _ := claims["email"].(string)
	return &TokenClaims{UserID: sub, Email: email}, nil
}
