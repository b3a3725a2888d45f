package domain

import "time"

// Friendship statuses
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
)

// Friendship is a directed edge in the friend graph.
// PairKey guarantees at most one edge per unordered pair.
type Friendship struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PairKey   string    `gorm:"column:pair_key;uniqueIndex;size:390" json:"-"`
	From      string    `gorm:"column:from_email;index;size:190" json:"from"`
	To        string    `gorm:"column:to_email;index;size:190" json:"to"`
	Status    string    `gorm:"column:status;default:pending" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// Involves reports whether the edge touches the given email
func (f *Friendship) Involves(email string) bool {
	return f.From == email || f.To == email
}

// OtherSide returns the participant that is not the given email
func (f *Friendship) OtherSide(email string) string {
	if f.From == email {
		return f.To
	}
	return f.From
}

// FriendRequestCreate represents a send-request action
type FriendRequestCreate struct {
	To string `json:"to" binding:"required,email"`
}

// FriendshipResponse represents an edge in API responses
type FriendshipResponse struct {
	ID        uint64        `json:"id"`
	From      string        `json:"from"`
	To        string        `json:"to"`
	Status    string        `json:"status"`
	CreatedAt string        `json:"created_at"`
	Friend    *UserResponse `json:"friend,omitempty"`
}

// ToResponse converts Friendship to FriendshipResponse
func (f *Friendship) ToResponse() *FriendshipResponse {
	return &FriendshipResponse{
		ID:        f.ID,
		From:      f.From,
		To:        f.To,
		Status:    f.Status,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
	}
}
