package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/pkg/jwt"
)

// Context keys set by the auth middleware
const (
	ContextUserID   = "userID"
	ContextEmail    = "userEmail"
	ContextUsername = "username"
)

// JWTAuth rejects requests without a valid bearer token
func JWTAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verifyRequest(c, manager)
		if err != nil {
			common.ErrorResponse(c, 401, "unauthorized", err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// OptionalJWTAuth fills identity context when a valid token is
// present and lets the request through either way
func OptionalJWTAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := verifyRequest(c, manager); err == nil {
			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextEmail, claims.Email)
			c.Set(ContextUsername, claims.Username)
		}
		c.Next()
	}
}

func verifyRequest(c *gin.Context, manager *jwt.Manager) (*jwt.Claims, error) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		// websocket clients cannot set headers, allow a query token
		token = c.Query("token")
	}
	if token == "" {
		return nil, common.ErrUnauthorized
	}
	return manager.VerifyToken(token)
}

// GetUserEmail returns the authenticated email, or "" when anonymous
func GetUserEmail(c *gin.Context) string {
	if email, ok := c.Get(ContextEmail); ok {
		if s, ok := email.(string); ok {
			return s
		}
	}
	return ""
}

// GetUserID returns the authenticated user id, or 0 when anonymous
func GetUserID(c *gin.Context) uint64 {
	if id, ok := c.Get(ContextUserID); ok {
		if n, ok := id.(uint64); ok {
			return n
		}
	}
	return 0
}
