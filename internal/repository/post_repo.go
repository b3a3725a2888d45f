package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
)

// PostRepository handles post data access
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id uint64) (*domain.Post, error)
	ListFeed(ctx context.Context, limit, offset int) ([]*domain.Post, int64, error)
	ListByAuthor(ctx context.Context, email string) ([]*domain.Post, error)
	Delete(ctx context.Context, id uint64) error
	SetReaction(ctx context.Context, postID uint64, userEmail, reactionType string) (removed bool, err error)
	ReactionCounts(ctx context.Context, postID uint64) (map[string]int64, error)
	UserReaction(ctx context.Context, postID uint64, userEmail string) (string, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint64) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListFeed(ctx context.Context, limit, offset int) ([]*domain.Post, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*domain.Post
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, total, err
}

func (r *postRepository) ListByAuthor(ctx context.Context, email string) ([]*domain.Post, error) {
	var posts []*domain.Post
	err := r.db.WithContext(ctx).
		Where("author_email = ?", email).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&domain.PostReaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&domain.PostReactionCount{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.ErrPostNotFound
		}
		return nil
	})
}

// SetReaction applies the toggle rules and keeps the per-type counter
// table in step, all in one transaction.
func (r *postRepository) SetReaction(ctx context.Context, postID uint64, userEmail, reactionType string) (bool, error) {
	var removed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.PostReaction
		err := tx.Where("post_id = ? AND user_email = ?", postID, userEmail).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&domain.PostReaction{
				PostID:    postID,
				UserEmail: userEmail,
				Type:      reactionType,
			}).Error; err != nil {
				return err
			}
			return incrementCount(tx, postID, reactionType)

		case err != nil:
			return err

		case existing.Type == reactionType:
			removed = true
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			return decrementCount(tx, postID, reactionType)

		default:
			previous := existing.Type
			if err := tx.Model(&existing).Update("type", reactionType).Error; err != nil {
				return err
			}
			if err := decrementCount(tx, postID, previous); err != nil {
				return err
			}
			return incrementCount(tx, postID, reactionType)
		}
	})
	return removed, err
}

func incrementCount(tx *gorm.DB, postID uint64, reactionType string) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + 1")}),
	}).Create(&domain.PostReactionCount{
		PostID: postID,
		Type:   reactionType,
		Count:  1,
	}).Error
}

func decrementCount(tx *gorm.DB, postID uint64, reactionType string) error {
	if err := tx.Model(&domain.PostReactionCount{}).
		Where("post_id = ? AND type = ? AND count > 0", postID, reactionType).
		Update("count", gorm.Expr("count - 1")).Error; err != nil {
		return err
	}
	return tx.Where("post_id = ? AND type = ? AND count <= 0", postID, reactionType).
		Delete(&domain.PostReactionCount{}).Error
}

func (r *postRepository) ReactionCounts(ctx context.Context, postID uint64) (map[string]int64, error) {
	var rows []domain.PostReactionCount
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Count
	}
	return counts, nil
}

// UserReaction returns the user's current reaction type, or "" when
// none exists.
func (r *postRepository) UserReaction(ctx context.Context, postID uint64, userEmail string) (string, error) {
	var reaction domain.PostReaction
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_email = ?", postID, userEmail).
		First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return reaction.Type, nil
}
