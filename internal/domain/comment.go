package domain

import "time"

// Comment is a reply under a post. Comments do not consume the
// author's post quota.
type Comment struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PostID    uint64    `gorm:"column:post_id;index" json:"post_id"`
	UserEmail string    `gorm:"column:user_email;size:190" json:"user"`
	Text      string    `gorm:"column:text;type:text" json:"text"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}

// CreateCommentRequest represents a new comment on a post
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentResponse represents a comment in API responses
type CommentResponse struct {
	ID        uint64 `json:"id"`
	PostID    uint64 `json:"post_id"`
	User      string `json:"user"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// ToResponse converts Comment to CommentResponse
func (c *Comment) ToResponse() *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		User:      c.UserEmail,
		Text:      c.Text,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
