package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coffeegram/coffee-backend/internal/common"
)

// respondError maps domain errors onto HTTP statuses with the
// standard error envelope
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, common.ErrInvalidInput),
		errors.Is(err, common.ErrUnknownReaction),
		errors.Is(err, common.ErrSelfMessage),
		errors.Is(err, common.ErrSelfFriendship):
		status = http.StatusBadRequest
		message = "invalid request"

	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrExpiredToken):
		status = http.StatusUnauthorized
		message = "unauthorized"

	case errors.Is(err, common.ErrForbidden),
		errors.Is(err, common.ErrNotRoomMember),
		errors.Is(err, common.ErrUserBanned):
		status = http.StatusForbidden
		message = "forbidden"

	case errors.Is(err, common.ErrNotFound),
		errors.Is(err, common.ErrUserNotFound),
		errors.Is(err, common.ErrRoomNotFound),
		errors.Is(err, common.ErrMessageNotFound),
		errors.Is(err, common.ErrFriendshipNotFound),
		errors.Is(err, common.ErrPostNotFound),
		errors.Is(err, common.ErrCommentNotFound),
		errors.Is(err, common.ErrCollectionNotFound):
		status = http.StatusNotFound
		message = "not found"

	case errors.Is(err, common.ErrUserAlreadyExists),
		errors.Is(err, common.ErrFriendshipExists),
		errors.Is(err, common.ErrPaymentCompleted):
		status = http.StatusConflict
		message = "conflict"

	case errors.Is(err, common.ErrQuotaExhausted):
		status = http.StatusPaymentRequired
		message = "post quota exhausted"
	}

	common.ErrorResponse(c, status, message, err)
}
