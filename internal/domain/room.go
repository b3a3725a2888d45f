package domain

import (
	"strings"
	"time"
)

// Room is a 1:1 chat channel between two identities.
// PairKey is derived from the sorted email pair and carries a unique
// index, so at most one room can exist per unordered pair.
type Room struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PairKey        string    `gorm:"column:pair_key;uniqueIndex;size:390" json:"-"`
	Sender         string    `gorm:"column:sender_email;index;size:190" json:"sender"`
	Receiver       string    `gorm:"column:receiver_email;index;size:190" json:"receiver"`
	LastMessage    string    `gorm:"column:last_message;type:text" json:"last_message,omitempty"`
	LastSender     string    `gorm:"column:last_sender;size:190" json:"last_sender,omitempty"`
	LastKind       string    `gorm:"column:last_kind;size:10" json:"last_kind,omitempty"`
	UnreadSender   bool      `gorm:"column:unread_sender;default:false" json:"-"`
	UnreadReceiver bool      `gorm:"column:unread_receiver;default:false" json:"-"`
	Background     string    `gorm:"column:config_background;size:20" json:"-"`
	FontFamily     string    `gorm:"column:config_font;size:50" json:"-"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Room) TableName() string {
	return "rooms"
}

// RoomPairKey derives the deterministic key for an unordered email pair
func RoomPairKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + "|" + b
}

// HasParticipant reports whether the email is one of the two members
func (r *Room) HasParticipant(email string) bool {
	return r.Sender == email || r.Receiver == email
}

// OtherSide returns the participant that is not the given email
func (r *Room) OtherSide(email string) string {
	if r.Sender == email {
		return r.Receiver
	}
	return r.Sender
}

// UnreadBy returns the participants that have unseen messages
func (r *Room) UnreadBy() []string {
	unread := make([]string, 0, 2)
	if r.UnreadSender {
		unread = append(unread, r.Sender)
	}
	if r.UnreadReceiver {
		unread = append(unread, r.Receiver)
	}
	return unread
}

// IsUnreadBy reports whether the email is in the unread-by set
func (r *Room) IsUnreadBy(email string) bool {
	return (r.Sender == email && r.UnreadSender) ||
		(r.Receiver == email && r.UnreadReceiver)
}

// ResolveRoomRequest asks for the room with another identity
type ResolveRoomRequest struct {
	Other string `json:"other" binding:"required,email"`
}

// RoomConfigRequest updates per-room display settings
type RoomConfigRequest struct {
	Background string `json:"background" binding:"required"`
	FontFamily string `json:"font_family" binding:"required"`
}

// RoomConfig is the display configuration of a room
type RoomConfig struct {
	Background string `json:"background,omitempty"`
	FontFamily string `json:"font_family,omitempty"`
}

// RoomResponse represents a room in API responses
type RoomResponse struct {
	ID          uint64      `json:"id"`
	Sender      string      `json:"sender"`
	Receiver    string      `json:"receiver"`
	LastMessage string      `json:"last_message,omitempty"`
	LastSender  string      `json:"last_sender,omitempty"`
	LastKind    string      `json:"last_kind,omitempty"`
	UnreadBy    []string    `json:"unread_by"`
	Config      *RoomConfig `json:"config,omitempty"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at"`
}

// ToResponse converts Room to RoomResponse
func (r *Room) ToResponse() *RoomResponse {
	resp := &RoomResponse{
		ID:          r.ID,
		Sender:      r.Sender,
		Receiver:    r.Receiver,
		LastMessage: r.LastMessage,
		LastSender:  r.LastSender,
		LastKind:    r.LastKind,
		UnreadBy:    r.UnreadBy(),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   r.UpdatedAt.Format(time.RFC3339),
	}
	if r.Background != "" || r.FontFamily != "" {
		resp.Config = &RoomConfig{Background: r.Background, FontFamily: r.FontFamily}
	}
	return resp
}
