package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenManager signs and verifies the session cookie token. The token names
// a server-side session row; it is evidence, not the session itself.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is not set")
	}
	return &TokenManager{secret: []byte(secret)}, nil
}

func (m *TokenManager) Generate(sessionID string, userID uint, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid":     sessionID,
		"user_id": userID,
		"exp":     expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify returns the session id and user id carried by a valid token.
func (m *TokenManager) Verify(tokenString string) (string, uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})

	if err != nil || !token.Valid {
		return "", 0, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)

	if !ok {
		return "", 0, fmt.Errorf("invalid token claims")
	}

	sessionID, ok := claims["sid"].(string)

	if !ok || sessionID == "" {
		return "", 0, fmt.Errorf("invalid session ID in token claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)

	if !ok {
		return "", 0, fmt.Errorf("invalid user ID in token claims")
	}

	return sessionID, uint(userIDFloat), nil
}
