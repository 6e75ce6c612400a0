// internal/auth/apikey.go
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// APIKeyRole identifies the holder of a service API key.
type APIKeyRole string

const (
	// APIKeyBot is issued to the management bot that writes roster records.
	APIKeyBot APIKeyRole = "bot"
	// APIKeyAdmin is issued to operators.
	APIKeyAdmin APIKeyRole = "admin"
)

// GenerateAPIKey creates a JWT API key with a role claim, no expiration.
func (s *Service) GenerateAPIKey(role APIKeyRole) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"role": string(role),
		"iss":  "botapi",
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateAPIKey validates a JWT API key and returns the role.
func (s *Service) ValidateAPIKey(tokenString string) (role string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return "", fmt.Errorf("invalid API key: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid API key claims")
	}

	role, ok = claims["role"].(string)
	if !ok {
		return "", fmt.Errorf("API key missing role claim")
	}

	if role != string(APIKeyBot) && role != string(APIKeyAdmin) {
		return "", fmt.Errorf("invalid API key role: %s", role)
	}

	return role, nil
}
