// internal/auth/session.go

// Package auth mints and verifies the tokens this API issues: frontend
// session credentials and service API keys. Both are HS256 JWTs signed
// with the same secret.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Service signs and validates tokens.
type Service struct {
	jwtSecret  string
	sessionTTL time.Duration
}

// NewService creates a token service. sessionTTL bounds the lifetime of
// minted session credentials.
func NewService(jwtSecret string, sessionTTL time.Duration) *Service {
	return &Service{jwtSecret: jwtSecret, sessionTTL: sessionTTL}
}

// SessionClaims is the verified content of a session credential.
type SessionClaims struct {
	UserID    string    `json:"sub"`
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// GenerateSessionToken mints the signed credential handed to the frontend
// after a completed login. The subject is the provider's stable user ID;
// no session state is kept server-side.
func (s *Service) GenerateSessionToken(userID, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.sessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateSessionToken verifies a session credential and returns its claims.
// Expired or tampered tokens fail.
func (s *Service) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token missing subject claim")
	}

	sc := &SessionClaims{UserID: sub}
	sc.Username, _ = claims["username"].(string)
	if iat, ok := claims["iat"].(float64); ok {
		sc.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := claims["exp"].(float64); ok {
		sc.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return sc, nil
}
