package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/middleware"
	"github.com/coffeegram/coffee-backend/internal/service"
)

// AuthHandler serves registration and login endpoints
type AuthHandler struct {
	auth service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "invalid request body", err)
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, resp)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "invalid request body", err)
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.auth.Me(c.Request.Context(), middleware.GetUserEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}
