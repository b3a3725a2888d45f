package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
)

// PaymentRepository handles payment data access
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	FindBySessionID(ctx context.Context, sessionID string) (*domain.Payment, error)
	ListForUser(ctx context.Context, email string) ([]*domain.Payment, error)
	Complete(ctx context.Context, sessionID string) error
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *paymentRepository) FindBySessionID(ctx context.Context, sessionID string) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) ListForUser(ctx context.Context, email string) ([]*domain.Payment, error) {
	var payments []*domain.Payment
	err := r.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

// Complete flips a pending payment to completed. The status guard in
// the WHERE clause makes a second completion a no-op, reported as
// ErrPaymentCompleted.
func (r *paymentRepository) Complete(ctx context.Context, sessionID string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("session_id = ? AND status = ?", sessionID, domain.PaymentPending).
		Updates(map[string]interface{}{
			"status":       domain.PaymentCompleted,
			"completed_at": &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrPaymentCompleted
	}
	return nil
}
