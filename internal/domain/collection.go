package domain

import "time"

// Collection is a user-curated group of saved posts
type Collection struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OwnerEmail string    `gorm:"column:owner_email;index;size:190" json:"owner"`
	Name       string    `gorm:"column:name;size:100" json:"name"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Collection) TableName() string {
	return "collections"
}

// CollectionPost links a saved post into a collection
type CollectionPost struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CollectionID uint64    `gorm:"column:collection_id;uniqueIndex:idx_collection_post,priority:1" json:"collection_id"`
	PostID       uint64    `gorm:"column:post_id;uniqueIndex:idx_collection_post,priority:2" json:"post_id"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (CollectionPost) TableName() string {
	return "collection_posts"
}

// CreateCollectionRequest represents a new collection
type CreateCollectionRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CollectionPostRequest adds or removes a saved post
type CollectionPostRequest struct {
	PostID uint64 `json:"post_id" binding:"required"`
}

// CollectionResponse represents a collection in API responses
type CollectionResponse struct {
	ID        uint64          `json:"id"`
	Owner     string          `json:"owner"`
	Name      string          `json:"name"`
	PostCount int64           `json:"post_count"`
	Posts     []*PostResponse `json:"posts,omitempty"`
	CreatedAt string          `json:"created_at"`
}

// ToResponse converts Collection to CollectionResponse
func (c *Collection) ToResponse() *CollectionResponse {
	return &CollectionResponse{
		ID:        c.ID,
		Owner:     c.OwnerEmail,
		Name:      c.Name,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
