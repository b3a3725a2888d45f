package domain

import "time"

// Post reaction types
const (
	ReactionLove    = "love"
	ReactionLike    = "like"
	ReactionDislike = "dislike"
	ReactionFunny   = "funny"
)

// IsKnownPostReaction reports whether the reaction type is supported
func IsKnownPostReaction(t string) bool {
	switch t {
	case ReactionLove, ReactionLike, ReactionDislike, ReactionFunny:
		return true
	}
	return false
}

// Post is a feed entry. Creating one consumes a slot from the
// author's quota.
type Post struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AuthorEmail string    `gorm:"column:author_email;index;size:190" json:"author"`
	Caption     string    `gorm:"column:caption;type:text" json:"caption"`
	MediaURL    string    `gorm:"column:media_url" json:"media_url,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}

// PostReaction is one user's reaction on a post.
// The unique index keeps at most one reaction per user per post.
type PostReaction struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PostID    uint64    `gorm:"column:post_id;uniqueIndex:idx_post_react_user,priority:1" json:"post_id"`
	UserEmail string    `gorm:"column:user_email;size:190;uniqueIndex:idx_post_react_user,priority:2" json:"user"`
	Type      string    `gorm:"column:type;size:10" json:"type"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PostReaction) TableName() string {
	return "post_reactions"
}

// PostReactionCount is the denormalized per-type counter for a post
type PostReactionCount struct {
	PostID uint64 `gorm:"column:post_id;primaryKey" json:"post_id"`
	Type   string `gorm:"column:type;size:10;primaryKey" json:"type"`
	Count  int64  `gorm:"column:count;default:0" json:"count"`
}

func (PostReactionCount) TableName() string {
	return "post_reaction_counts"
}

// CreatePostRequest represents a new post
type CreatePostRequest struct {
	Caption  string `json:"caption" binding:"required"`
	MediaURL string `json:"media_url"`
}

// PostReactionRequest toggles a reaction on a post
type PostReactionRequest struct {
	Type string `json:"type" binding:"required"`
}

// PostResponse represents a post in API responses
type PostResponse struct {
	ID        uint64           `json:"id"`
	Author    string           `json:"author"`
	Caption   string           `json:"caption"`
	MediaURL  string           `json:"media_url,omitempty"`
	Reactions map[string]int64 `json:"reactions,omitempty"`
	MyReact   string           `json:"my_reaction,omitempty"`
	CreatedAt string           `json:"created_at"`
}

// ToResponse converts Post to PostResponse
func (p *Post) ToResponse() *PostResponse {
	return &PostResponse{
		ID:        p.ID,
		Author:    p.AuthorEmail,
		Caption:   p.Caption,
		MediaURL:  p.MediaURL,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
