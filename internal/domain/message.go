package domain

// Message kinds
const (
	MessageKindText  = "text"
	MessageKindImage = "image"
)

// MessageEmojis is the reaction palette offered in chat.
// A reaction outside this set is rejected.
var MessageEmojis = []string{
	"❤️", "😀", "😂", "😍", "😅", "😎", "🤔", "😢", "😭", "😡",
}

// IsKnownEmoji reports whether the emoji belongs to the palette
func IsKnownEmoji(emoji string) bool {
	for _, e := range MessageEmojis {
		if e == emoji {
			return true
		}
	}
	return false
}

// Message is a single chat entry inside a room.
// CreatedAt is a client-supplied unix millisecond timestamp and is the
// sort key for room history.
type Message struct {
	ID        uint64            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RoomID    uint64            `gorm:"column:room_id;index:idx_messages_room_created,priority:1" json:"room_id"`
	Sender    string            `gorm:"column:sender_email;size:190" json:"sender"`
	Kind      string            `gorm:"column:kind;size:10;default:text" json:"kind"`
	Content   string            `gorm:"column:content;type:text" json:"content"`
	CreatedAt int64             `gorm:"column:created_at;index:idx_messages_room_created,priority:2" json:"created_at"`
	Reactions []MessageReaction `gorm:"foreignKey:MessageID" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}

// MessageReaction is one user's emoji on a message.
// The unique index keeps at most one reaction per user per message.
type MessageReaction struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MessageID uint64 `gorm:"column:message_id;uniqueIndex:idx_msg_react_user,priority:1" json:"message_id"`
	UserEmail string `gorm:"column:user_email;size:190;uniqueIndex:idx_msg_react_user,priority:2" json:"user"`
	Emoji     string `gorm:"column:emoji;size:20" json:"emoji"`
}

func (MessageReaction) TableName() string {
	return "message_reactions"
}

// SendMessageRequest represents a message append
type SendMessageRequest struct {
	Kind      string `json:"kind"`
	Content   string `json:"content" binding:"required"`
	CreatedAt int64  `json:"created_at"`
}

// MessageReactionRequest toggles an emoji on a message
type MessageReactionRequest struct {
	Emoji string `json:"emoji" binding:"required"`
}

// MessageResponse represents a message in API responses
type MessageResponse struct {
	ID        uint64            `json:"id"`
	RoomID    uint64            `json:"room_id"`
	Sender    string            `json:"sender"`
	Kind      string            `json:"kind"`
	Content   string            `json:"content"`
	CreatedAt int64             `json:"created_at"`
	Reactions map[string]string `json:"reactions,omitempty"`
}

// ToResponse converts Message to MessageResponse
func (m *Message) ToResponse() *MessageResponse {
	resp := &MessageResponse{
		ID:        m.ID,
		RoomID:    m.RoomID,
		Sender:    m.Sender,
		Kind:      m.Kind,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
	if len(m.Reactions) > 0 {
		resp.Reactions = make(map[string]string, len(m.Reactions))
		for _, r := range m.Reactions {
			resp.Reactions[r.UserEmail] = r.Emoji
		}
	}
	return resp
}
