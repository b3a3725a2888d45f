package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Claims is the JWT payload for a logged-in user.
// Email is the natural key used across the whole system.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uint64 `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Manager issues and verifies HS256 tokens
type Manager struct {
	secretKey []byte
	expiresIn time.Duration
	refreshIn time.Duration
}

// NewManager creates a new token manager.
// expiresIn and refreshIn are in minutes.
func NewManager(secret string, expiresIn, refreshIn int) *Manager {
	return &Manager{
		secretKey: []byte(secret),
		expiresIn: time.Duration(expiresIn) * time.Minute,
		refreshIn: time.Duration(refreshIn) * time.Minute,
	}
}

// GenerateToken creates an access token for a user
func (m *Manager) GenerateToken(userID uint64, email, username string) (string, error) {
	return m.generate(userID, email, username, m.expiresIn, "access")
}

// GenerateRefreshToken creates a longer-lived refresh token
func (m *Manager) GenerateRefreshToken(userID uint64, email, username string) (string, error) {
	return m.generate(userID, email, username, m.refreshIn, "refresh")
}

func (m *Manager) generate(userID uint64, email, username string, ttl time.Duration, subject string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   userID,
		Email:    email,
		Username: username,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// VerifyToken validates a token and returns its claims
func (m *Manager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
