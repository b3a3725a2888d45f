package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/middleware"
	"github.com/coffeegram/coffee-backend/internal/service"
	"github.com/coffeegram/coffee-backend/internal/ws"
	"github.com/coffeegram/coffee-backend/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ChatHandler serves rooms, messages, reactions, badges and the
// websocket stream
type ChatHandler struct {
	rooms    service.RoomService
	messages service.MessageService
	presence service.PresenceService
	hub      *ws.Hub
}

// NewChatHandler creates a new chat handler
func NewChatHandler(rooms service.RoomService, messages service.MessageService,
	presence service.PresenceService, hub *ws.Hub) *ChatHandler {
	return &ChatHandler{
		rooms:    rooms,
		messages: messages,
		presence: presence,
		hub:      hub,
	}
}

// ResolveRoom handles POST /api/v1/rooms/resolve
func (h *ChatHandler) ResolveRoom(c *gin.Context) {
	var req domain.ResolveRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "invalid request body", err)
		return
	}

	resp, err := h.rooms.ResolveOrCreate(c.Request.Context(), middleware.GetUserEmail(c), req.Other)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// ListRooms handles GET /api/v1/rooms
func (h *ChatHandler) ListRooms(c *gin.Context) {
	resp, err := h.rooms.List(c.Request.Context(), middleware.GetUserEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// GetRoom handles GET /api/v1/rooms/:id
func (h *ChatHandler) GetRoom(c *gin.Context) {
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}

	resp, err := h.rooms.Get(c.Request.Context(), middleware.GetUserEmail(c), roomID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// MarkRead handles POST /api/v1/rooms/:id/read
func (h *ChatHandler) MarkRead(c *gin.Context) {
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.rooms.MarkRead(c.Request.Context(), middleware.GetUserEmail(c), roomID); err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"read": true}, nil)
}

// UpdateConfig handles PUT /api/v1/rooms/:id/config
func (h *ChatHandler) UpdateConfig(c *gin.Context) {
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.RoomConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "invalid request body", err)
		return
	}

	resp, err := h.rooms.UpdateConfig(c.Request.Context(), middleware.GetUserEmail(c), roomID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// SendMessage handles POST /api/v1/rooms/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "invalid request body", err)
		return
	}

	resp, err := h.messages.Send(c.Request.Context(), middleware.GetUserEmail(c), roomID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.CreatedResponse(c, resp)
}

// ListMessages handles GET /api/v1/rooms/:id/messages
func (h *ChatHandler) ListMessages(c *gin.Context) {
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	resp, err := h.messages.List(c.Request.Context(), middleware.GetUserEmail(c), roomID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// ReactMessage handles POST /api/v1/rooms/:id/messages/:messageId/reactions
func (h *ChatHandler) ReactMessage(c *gin.Context) {
	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}
	messageID, ok := parseID(c, "messageId")
	if !ok {
		return
	}

	var req domain.MessageReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "invalid request body", err)
		return
	}

	resp, err := h.messages.React(c.Request.Context(), middleware.GetUserEmail(c), roomID, messageID, req.Emoji)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// Badges handles GET /api/v1/badges
func (h *ChatHandler) Badges(c *gin.Context) {
	state, err := h.presence.State(c.Request.Context(), middleware.GetUserEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessResponse(c, state, nil)
}

// Stream handles GET /ws. The connection receives badge_state events
// until the client disconnects.
func (h *ChatHandler) Stream(c *gin.Context) {
	email := middleware.GetUserEmail(c)
	if email == "" {
		common.ErrorResponse(c, 401, "unauthorized", common.ErrUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.GetLogger().Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := ws.NewClient(h.hub, conn, email)
	go client.WritePump()
	go client.ReadPump()

	// push the current state so the client starts in sync
	h.presence.Recompute(c.Request.Context(), email)
}

func parseID(c *gin.Context, param string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		common.ErrorResponse(c, 400, "invalid id", err)
		return 0, false
	}
	return id, true
}
