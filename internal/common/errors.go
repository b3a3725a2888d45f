package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserBanned         = errors.New("account is banned")

	// Chat errors
	ErrRoomNotFound    = errors.New("room not found")
	ErrNotRoomMember   = errors.New("not a room participant")
	ErrMessageNotFound = errors.New("message not found")
	ErrSelfMessage     = errors.New("cannot message yourself")
	ErrUnknownReaction = errors.New("unknown reaction")

	// Friend errors
	ErrFriendshipExists   = errors.New("friendship already exists")
	ErrFriendshipNotFound = errors.New("friendship not found")
	ErrSelfFriendship     = errors.New("cannot befriend yourself")

	// Post errors
	ErrPostNotFound    = errors.New("post not found")
	ErrQuotaExhausted  = errors.New("no post slots remaining")
	ErrCommentNotFound = errors.New("comment not found")

	// Collection errors
	ErrCollectionNotFound = errors.New("collection not found")

	// Payment errors
	ErrPaymentCompleted = errors.New("payment already completed")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
