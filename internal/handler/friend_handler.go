package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/middleware"
	"github.com/coffeegram/coffee-backend/internal/service"
)

// FriendHandler serves friend graph endpoints
type FriendHandler struct {
	friends service.FriendService
}

// NewFriendHandler creates a new friend handler
func NewFriendHandler(friends service.FriendService) *FriendHandler {
	return &FriendHandler{friends: friends}
}

// Send handles POST /api/v1/friends
func (h *FriendHandler) Send(c *gin.Context) {
	var req domain.FriendRequestCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "invalid request body", err)
		return
	}

	resp, err := h.friends.SendRequest(c.Request.Context(), middleware.GetUserEmail(c), req.To)
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, resp)
}

// List handles GET /api/v1/friends?status=pending|accepted
func (h *FriendHandler) List(c *gin.Context) {
	resp, err := h.friends.List(c.Request.Context(), middleware.GetUserEmail(c), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// Accept handles POST /api/v1/friends/:id/accept
func (h *FriendHandler) Accept(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, 400, "invalid friendship id", err)
		return
	}

	resp, err := h.friends.Accept(c.Request.Context(), middleware.GetUserEmail(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// Remove handles DELETE /api/v1/friends/:id
func (h *FriendHandler) Remove(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, 400, "invalid friendship id", err)
		return
	}

	if err := h.friends.Remove(c.Request.Context(), middleware.GetUserEmail(c), id); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
