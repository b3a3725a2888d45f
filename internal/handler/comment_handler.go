package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/middleware"
	"github.com/coffeegram/coffee-backend/internal/service"
)

// CommentHandler serves comment endpoints under posts
type CommentHandler struct {
	comments service.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(comments service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// Create handles POST /api/v1/posts/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "invalid request body", err)
		return
	}

	resp, err := h.comments.Add(c.Request.Context(), middleware.GetUserEmail(c), postID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, resp)
}

// List handles GET /api/v1/posts/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}

	resp, err := h.comments.List(c.Request.Context(), postID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// Delete handles DELETE /api/v1/posts/:id/comments/:commentId
func (h *CommentHandler) Delete(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseID(c, "commentId")
	if !ok {
		return
	}

	if err := h.comments.Remove(c.Request.Context(), middleware.GetUserEmail(c), postID, commentID); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
