package service

import (
	"context"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/repository"
)

// CollectionService handles saved-post collections
type CollectionService interface {
	Create(ctx context.Context, owner string, req *domain.CreateCollectionRequest) (*domain.CollectionResponse, error)
	Get(ctx context.Context, viewer string, id uint64) (*domain.CollectionResponse, error)
	List(ctx context.Context, owner string) ([]*domain.CollectionResponse, error)
	Delete(ctx context.Context, viewer string, id uint64) error
	AddPost(ctx context.Context, viewer string, collectionID, postID uint64) error
	RemovePost(ctx context.Context, viewer string, collectionID, postID uint64) error
}

type collectionService struct {
	collections repository.CollectionRepository
	posts       repository.PostRepository
}

// NewCollectionService creates a new collection service
func NewCollectionService(collections repository.CollectionRepository,
	posts repository.PostRepository) CollectionService {
	return &collectionService{collections: collections, posts: posts}
}

func (s *collectionService) Create(ctx context.Context, owner string, req *domain.CreateCollectionRequest) (*domain.CollectionResponse, error) {
	collection := &domain.Collection{
		OwnerEmail: owner,
		Name:       req.Name,
	}
	if err := s.collections.Create(ctx, collection); err != nil {
		return nil, err
	}
	return collection.ToResponse(), nil
}

// Get returns the collection with its saved posts. Collections are
// private to their owner.
func (s *collectionService) Get(ctx context.Context, viewer string, id uint64) (*domain.CollectionResponse, error) {
	collection, err := s.ownedCollection(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	posts, err := s.collections.ListPosts(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := collection.ToResponse()
	resp.PostCount = int64(len(posts))
	resp.Posts = make([]*domain.PostResponse, 0, len(posts))
	for _, post := range posts {
		resp.Posts = append(resp.Posts, post.ToResponse())
	}
	return resp, nil
}

func (s *collectionService) List(ctx context.Context, owner string) ([]*domain.CollectionResponse, error) {
	collections, err := s.collections.ListForOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.CollectionResponse, 0, len(collections))
	for _, collection := range collections {
		resp := collection.ToResponse()
		if count, err := s.collections.CountPosts(ctx, collection.ID); err == nil {
			resp.PostCount = count
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *collectionService) Delete(ctx context.Context, viewer string, id uint64) error {
	if _, err := s.ownedCollection(ctx, viewer, id); err != nil {
		return err
	}
	return s.collections.Delete(ctx, id)
}

func (s *collectionService) AddPost(ctx context.Context, viewer string, collectionID, postID uint64) error {
	if _, err := s.ownedCollection(ctx, viewer, collectionID); err != nil {
		return err
	}
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return err
	}
	return s.collections.AddPost(ctx, collectionID, postID)
}

func (s *collectionService) RemovePost(ctx context.Context, viewer string, collectionID, postID uint64) error {
	if _, err := s.ownedCollection(ctx, viewer, collectionID); err != nil {
		return err
	}
	return s.collections.RemovePost(ctx, collectionID, postID)
}

func (s *collectionService) ownedCollection(ctx context.Context, viewer string, id uint64) (*domain.Collection, error) {
	collection, err := s.collections.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if collection.OwnerEmail != viewer {
		return nil, common.ErrForbidden
	}
	return collection, nil
}
