package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
)

// FriendshipRepository handles friend graph data access
type FriendshipRepository interface {
	Create(ctx context.Context, f *domain.Friendship) error
	FindByID(ctx context.Context, id uint64) (*domain.Friendship, error)
	FindBetween(ctx context.Context, a, b string) (*domain.Friendship, error)
	ListForUser(ctx context.Context, email, status string) ([]*domain.Friendship, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
	Delete(ctx context.Context, id uint64) error
	HasPendingTo(ctx context.Context, email string) (bool, error)
}

type friendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository creates a new friendship repository
func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

// Create inserts the edge. The pair key's unique index rejects a
// second edge for the same pair regardless of direction.
func (r *friendshipRepository) Create(ctx context.Context, f *domain.Friendship) error {
	f.PairKey = domain.RoomPairKey(f.From, f.To)

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pair_key"}},
			DoNothing: true,
		}).
		Create(f)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrFriendshipExists
	}
	return nil
}

func (r *friendshipRepository) FindByID(ctx context.Context, id uint64) (*domain.Friendship, error) {
	var f domain.Friendship
	err := r.db.WithContext(ctx).First(&f, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrFriendshipNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *friendshipRepository) FindBetween(ctx context.Context, a, b string) (*domain.Friendship, error) {
	var f domain.Friendship
	err := r.db.WithContext(ctx).
		Where("pair_key = ?", domain.RoomPairKey(a, b)).
		First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrFriendshipNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListForUser returns edges touching the email, optionally filtered
// by status.
func (r *friendshipRepository) ListForUser(ctx context.Context, email, status string) ([]*domain.Friendship, error) {
	query := r.db.WithContext(ctx).
		Where("from_email = ? OR to_email = ?", email, email)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var edges []*domain.Friendship
	err := query.Order("created_at DESC").Find(&edges).Error
	return edges, err
}

func (r *friendshipRepository) UpdateStatus(ctx context.Context, id uint64, status string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Friendship{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrFriendshipNotFound
	}
	return nil
}

func (r *friendshipRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Friendship{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrFriendshipNotFound
	}
	return nil
}

// HasPendingTo reports whether the email has any incoming request
// awaiting an answer.
func (r *friendshipRepository) HasPendingTo(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Friendship{}).
		Where("to_email = ? AND status = ?", email, domain.FriendshipPending).
		Count(&count).Error
	return count > 0, err
}
