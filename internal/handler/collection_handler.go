package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/middleware"
	"github.com/coffeegram/coffee-backend/internal/service"
)

// CollectionHandler serves saved-post collection endpoints
type CollectionHandler struct {
	collections service.CollectionService
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(collections service.CollectionService) *CollectionHandler {
	return &CollectionHandler{collections: collections}
}

// Create handles POST /api/v1/collections
func (h *CollectionHandler) Create(c *gin.Context) {
	var req domain.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "invalid request body", err)
		return
	}

	resp, err := h.collections.Create(c.Request.Context(), middleware.GetUserEmail(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, resp)
}

// List handles GET /api/v1/collections
func (h *CollectionHandler) List(c *gin.Context) {
	resp, err := h.collections.List(c.Request.Context(), middleware.GetUserEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// Get handles GET /api/v1/collections/:id
func (h *CollectionHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	resp, err := h.collections.Get(c.Request.Context(), middleware.GetUserEmail(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// Delete handles DELETE /api/v1/collections/:id
func (h *CollectionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.collections.Delete(c.Request.Context(), middleware.GetUserEmail(c), id); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// AddPost handles POST /api/v1/collections/:id/posts
func (h *CollectionHandler) AddPost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.CollectionPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "invalid request body", err)
		return
	}

	if err := h.collections.AddPost(c.Request.Context(), middleware.GetUserEmail(c), id, req.PostID); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"added": true}, nil)
}

// RemovePost handles DELETE /api/v1/collections/:id/posts/:postId
func (h *CollectionHandler) RemovePost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	postID, ok := parseID(c, "postId")
	if !ok {
		return
	}

	if err := h.collections.RemovePost(c.Request.Context(), middleware.GetUserEmail(c), id, postID); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"removed": true}, nil)
}
