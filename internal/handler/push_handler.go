package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/middleware"
	"github.com/coffeegram/coffee-backend/internal/repository"
)

// PushHandler serves device token registration
type PushHandler struct {
	tokens repository.DeviceTokenRepository
}

// NewPushHandler creates a new push handler
func NewPushHandler(tokens repository.DeviceTokenRepository) *PushHandler {
	return &PushHandler{tokens: tokens}
}

// Register handles POST /api/v1/push/token
func (h *PushHandler) Register(c *gin.Context) {
	var req domain.RegisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "invalid request body", err)
		return
	}

	if err := h.tokens.Upsert(c.Request.Context(), middleware.GetUserEmail(c), req.Token); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"registered": true}, nil)
}

// Unregister handles DELETE /api/v1/push/token
func (h *PushHandler) Unregister(c *gin.Context) {
	var req domain.RegisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "invalid request body", err)
		return
	}

	if err := h.tokens.Delete(c.Request.Context(), req.Token); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"unregistered": true}, nil)
}
