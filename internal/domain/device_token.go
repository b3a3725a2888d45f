package domain

import "time"

// DeviceToken maps a user to a push-capable device
type DeviceToken struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserEmail string    `gorm:"column:user_email;index;size:190" json:"user"`
	Token     string    `gorm:"column:token;uniqueIndex;size:255" json:"token"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (DeviceToken) TableName() string {
	return "device_tokens"
}

// RegisterTokenRequest registers a device for push delivery
type RegisterTokenRequest struct {
	Token string `json:"token" binding:"required"`
}
