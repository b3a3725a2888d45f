package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/middleware"
	"github.com/coffeegram/coffee-backend/internal/service"
)

// PostHandler serves the feed and post endpoints
type PostHandler struct {
	posts service.PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(posts service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// Create handles POST /api/v1/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req domain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "invalid request body", err)
		return
	}

	resp, err := h.posts.Create(c.Request.Context(), middleware.GetUserEmail(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, resp)
}

// Feed handles GET /api/v1/posts?page=&limit=
func (h *PostHandler) Feed(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	posts, total, err := h.posts.Feed(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, posts, &common.Meta{Page: page, Limit: limit, Total: total})
}

// Get handles GET /api/v1/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	resp, err := h.posts.Get(c.Request.Context(), middleware.GetUserEmail(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// ListByAuthor handles GET /api/v1/posts/by/:email
func (h *PostHandler) ListByAuthor(c *gin.Context) {
	resp, err := h.posts.ListByAuthor(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// Delete handles DELETE /api/v1/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), middleware.GetUserEmail(c), id); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// React handles POST /api/v1/posts/:id/reactions
func (h *PostHandler) React(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.PostReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "invalid request body", err)
		return
	}

	resp, err := h.posts.React(c.Request.Context(), middleware.GetUserEmail(c), id, req.Type)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// Search handles GET /api/v1/posts/search?q=&limit=
func (h *PostHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		common.ErrorResponse(c, 400, "query is required", common.ErrInvalidInput)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	resp, err := h.posts.Search(c.Request.Context(), middleware.GetUserEmail(c), query, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}
