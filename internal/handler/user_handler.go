package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/middleware"
	"github.com/coffeegram/coffee-backend/internal/service"
)

// UserHandler serves profile endpoints
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// resolveRequest is the batch lookup body
type resolveRequest struct {
	Emails []string `json:"emails" binding:"required,min=1,dive,email"`
}

// Get handles GET /api/v1/users/:email
func (h *UserHandler) Get(c *gin.Context) {
	resp, err := h.users.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// Resolve handles POST /api/v1/users/resolve. Unknown emails are
// simply absent from the result.
func (h *UserHandler) Resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "invalid request body", err)
		return
	}

	resolved, err := h.users.Resolve(c.Request.Context(), req.Emails)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resolved, nil)
}

// UpdateProfile handles PATCH /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "invalid request body", err)
		return
	}

	resp, err := h.users.UpdateProfile(c.Request.Context(), middleware.GetUserEmail(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}
