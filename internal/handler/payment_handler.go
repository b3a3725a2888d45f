package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/middleware"
	"github.com/coffeegram/coffee-backend/internal/service"
)

// PaymentHandler serves post-slot purchase endpoints
type PaymentHandler struct {
	payments service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Checkout handles POST /api/v1/payments/checkout
func (h *PaymentHandler) Checkout(c *gin.Context) {
	var req domain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "invalid request body", err)
		return
	}

	resp, err := h.payments.Checkout(c.Request.Context(), middleware.GetUserEmail(c), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, resp)
}

// Complete handles POST /api/v1/payments/complete. Completing an
// already-completed session returns the payment without crediting
// again.
func (h *PaymentHandler) Complete(c *gin.Context) {
	var req domain.CompletePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "invalid request body", err)
		return
	}

	resp, err := h.payments.Complete(c.Request.Context(), middleware.GetUserEmail(c), &req)
	if err != nil {
		if errors.Is(err, common.ErrPaymentCompleted) && resp != nil {
			common.SuccessResponse(c, resp, nil)
			return
		}
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// History handles GET /api/v1/payments
func (h *PaymentHandler) History(c *gin.Context) {
	resp, err := h.payments.History(c.Request.Context(), middleware.GetUserEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}
