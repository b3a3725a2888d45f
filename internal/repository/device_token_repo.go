package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/coffeegram/coffee-backend/internal/domain"
)

// DeviceTokenRepository handles push token data access
type DeviceTokenRepository interface {
	Upsert(ctx context.Context, userEmail, token string) error
	ListForUser(ctx context.Context, email string) ([]string, error)
	Delete(ctx context.Context, token string) error
}

type deviceTokenRepository struct {
	db *gorm.DB
}

// NewDeviceTokenRepository creates a new device token repository
func NewDeviceTokenRepository(db *gorm.DB) DeviceTokenRepository {
	return &deviceTokenRepository{db: db}
}

// Upsert re-binds a token to its latest owner; a device that switches
// accounts takes its token with it.
func (r *deviceTokenRepository) Upsert(ctx context.Context, userEmail, token string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"user_email": userEmail}),
		}).
		Create(&domain.DeviceToken{
			UserEmail: userEmail,
			Token:     token,
		}).Error
}

func (r *deviceTokenRepository) ListForUser(ctx context.Context, email string) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).
		Model(&domain.DeviceToken{}).
		Where("user_email = ?", email).
		Pluck("token", &tokens).Error
	return tokens, err
}

func (r *deviceTokenRepository) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&domain.DeviceToken{}).Error
}
