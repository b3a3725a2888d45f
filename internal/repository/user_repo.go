package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
)

// emailBatchSize caps the IN clause of a batch lookup; larger inputs
// are split into sequential queries.
const emailBatchSize = 10

// UserRepository handles user data access
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByEmails(ctx context.Context, emails []string) ([]*domain.User, error)
	UpdateFields(ctx context.Context, id uint64, fields map[string]interface{}) error
	AdjustQuota(ctx context.Context, email string, delta int) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmails resolves a set of emails to users. Emails with no
// matching account are dropped from the result, not reported.
func (r *userRepository) FindByEmails(ctx context.Context, emails []string) ([]*domain.User, error) {
	if len(emails) == 0 {
		return []*domain.User{}, nil
	}

	users := make([]*domain.User, 0, len(emails))
	for start := 0; start < len(emails); start += emailBatchSize {
		end := start + emailBatchSize
		if end > len(emails) {
			end = len(emails)
		}

		var chunk []*domain.User
		if err := r.db.WithContext(ctx).
			Where("email IN ?", emails[start:end]).
			Find(&chunk).Error; err != nil {
			return nil, err
		}
		users = append(users, chunk...)
	}
	return users, nil
}

func (r *userRepository) UpdateFields(ctx context.Context, id uint64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// AdjustQuota moves posts_remaining by delta. A negative delta only
// applies while the balance stays non-negative; zero rows affected
// means the quota is exhausted.
func (r *userRepository) AdjustQuota(ctx context.Context, email string, delta int) error {
	query := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ?", email)
	if delta < 0 {
		query = query.Where("posts_remaining >= ?", -delta)
	}

	result := query.Update("posts_remaining", gorm.Expr("posts_remaining + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if delta < 0 {
			return common.ErrQuotaExhausted
		}
		return common.ErrUserNotFound
	}
	return nil
}
