package domain

import "time"

// DefaultPostQuota is the number of post slots granted at registration
const DefaultPostQuota = 5

// User represents a registered account.
// Email is the natural key used across rooms, friendships and messages.
type User struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email          string    `gorm:"column:email;uniqueIndex;size:190" json:"email"`
	Username       string    `gorm:"column:username;size:100" json:"username"`
	Password       string    `gorm:"column:password" json:"-"`
	Avatar         string    `gorm:"column:avatar" json:"avatar,omitempty"`
	PostsRemaining int       `gorm:"column:posts_remaining;default:5" json:"posts_remaining"`
	Banned         bool      `gorm:"column:banned;default:false" json:"-"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Avatar   string `json:"avatar"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents a profile edit; nil fields are untouched
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Avatar   *string `json:"avatar"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID             uint64 `json:"id"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	Avatar         string `json:"avatar,omitempty"`
	PostsRemaining int    `json:"posts_remaining"`
	CreatedAt      string `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Username:       u.Username,
		Avatar:         u.Avatar,
		PostsRemaining: u.PostsRemaining,
		CreatedAt:      u.CreatedAt.Format(time.RFC3339),
	}
}

// AuthResponse is returned by login and register
type AuthResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
}
