package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
)

// CollectionRepository handles saved-post collection data access
type CollectionRepository interface {
	Create(ctx context.Context, c *domain.Collection) error
	FindByID(ctx context.Context, id uint64) (*domain.Collection, error)
	ListForOwner(ctx context.Context, email string) ([]*domain.Collection, error)
	Delete(ctx context.Context, id uint64) error
	AddPost(ctx context.Context, collectionID, postID uint64) error
	RemovePost(ctx context.Context, collectionID, postID uint64) error
	ListPosts(ctx context.Context, collectionID uint64) ([]*domain.Post, error)
	CountPosts(ctx context.Context, collectionID uint64) (int64, error)
}

type collectionRepository struct {
	db *gorm.DB
}

// NewCollectionRepository creates a new collection repository
func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(ctx context.Context, c *domain.Collection) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *collectionRepository) FindByID(ctx context.Context, id uint64) (*domain.Collection, error) {
	var c domain.Collection
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrCollectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *collectionRepository) ListForOwner(ctx context.Context, email string) ([]*domain.Collection, error) {
	var collections []*domain.Collection
	err := r.db.WithContext(ctx).
		Where("owner_email = ?", email).
		Order("created_at DESC").
		Find(&collections).Error
	return collections, err
}

func (r *collectionRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", id).Delete(&domain.CollectionPost{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Collection{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.ErrCollectionNotFound
		}
		return nil
	})
}

// AddPost is idempotent; saving the same post twice is a no-op.
func (r *collectionRepository) AddPost(ctx context.Context, collectionID, postID uint64) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.CollectionPost{
			CollectionID: collectionID,
			PostID:       postID,
		}).Error
}

func (r *collectionRepository) RemovePost(ctx context.Context, collectionID, postID uint64) error {
	return r.db.WithContext(ctx).
		Where("collection_id = ? AND post_id = ?", collectionID, postID).
		Delete(&domain.CollectionPost{}).Error
}

func (r *collectionRepository) ListPosts(ctx context.Context, collectionID uint64) ([]*domain.Post, error) {
	var posts []*domain.Post
	err := r.db.WithContext(ctx).
		Joins("JOIN collection_posts ON collection_posts.post_id = posts.id").
		Where("collection_posts.collection_id = ?", collectionID).
		Order("collection_posts.created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *collectionRepository) CountPosts(ctx context.Context, collectionID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CollectionPost{}).
		Where("collection_id = ?", collectionID).
		Count(&count).Error
	return count, err
}
