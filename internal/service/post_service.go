package service

import (
	"context"
	"encoding/json"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/repository"
	"github.com/coffeegram/coffee-backend/internal/search"
	"github.com/coffeegram/coffee-backend/pkg/cache"
	"github.com/coffeegram/coffee-backend/pkg/logger"
)

// PostService handles the feed and post reactions
type PostService interface {
	Create(ctx context.Context, author string, req *domain.CreatePostRequest) (*domain.PostResponse, error)
	Get(ctx context.Context, viewer string, id uint64) (*domain.PostResponse, error)
	Feed(ctx context.Context, page, limit int) ([]*domain.PostResponse, int64, error)
	ListByAuthor(ctx context.Context, email string) ([]*domain.PostResponse, error)
	Delete(ctx context.Context, viewer string, id uint64) error
	React(ctx context.Context, viewer string, postID uint64, reactionType string) (*domain.PostResponse, error)
	Search(ctx context.Context, viewer, query string, limit int) ([]*domain.PostResponse, error)
}

type postService struct {
	posts  repository.PostRepository
	users  repository.UserRepository
	cache  cache.Service
	search *search.Client
}

// NewPostService creates a new post service. searchClient may be nil
// when the search cluster is disabled.
func NewPostService(posts repository.PostRepository, users repository.UserRepository,
	cacheService cache.Service, searchClient *search.Client) PostService {
	return &postService{
		posts:  posts,
		users:  users,
		cache:  cacheService,
		search: searchClient,
	}
}

// Create consumes one quota slot and publishes the post. The quota
// decrement fails first when the author is out of slots, so no post
// row is ever written for free.
func (s *postService) Create(ctx context.Context, author string, req *domain.CreatePostRequest) (*domain.PostResponse, error) {
	if err := s.users.AdjustQuota(ctx, author, -1); err != nil {
		return nil, err
	}

	post := &domain.Post{
		AuthorEmail: author,
		Caption:     req.Caption,
		MediaURL:    req.MediaURL,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		// give the slot back, the post never landed
		if qerr := s.users.AdjustQuota(ctx, author, 1); qerr != nil {
			logger.GetLogger().Error().Err(qerr).Str("author", author).Msg("quota refund failed")
		}
		return nil, err
	}

	s.indexPost(ctx, post)
	s.invalidateFeed(ctx)
	if err := s.cache.InvalidateProfile(ctx, author); err != nil {
		logger.GetLogger().Debug().Err(err).Msg("profile cache invalidation failed")
	}

	return post.ToResponse(), nil
}

func (s *postService) Get(ctx context.Context, viewer string, id uint64) (*domain.PostResponse, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, viewer, post)
}

// Feed returns a page of the global feed, newest first. Pages are
// cached briefly; viewer-specific fields are filled per request.
func (s *postService) Feed(ctx context.Context, page, limit int) ([]*domain.PostResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	type feedPage struct {
		Posts []*domain.PostResponse `json:"posts"`
		Total int64                  `json:"total"`
	}

	if cached, err := s.cache.GetFeed(ctx, page, limit); err == nil && len(cached) > 0 {
		var fp feedPage
		if err := json.Unmarshal(cached, &fp); err == nil {
			return fp.Posts, fp.Total, nil
		}
	}

	posts, total, err := s.posts.ListFeed(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*domain.PostResponse, 0, len(posts))
	for _, post := range posts {
		resp := post.ToResponse()
		if counts, err := s.posts.ReactionCounts(ctx, post.ID); err == nil && len(counts) > 0 {
			resp.Reactions = counts
		}
		responses = append(responses, resp)
	}

	if err := s.cache.SetFeed(ctx, page, limit, feedPage{Posts: responses, Total: total}); err != nil {
		logger.GetLogger().Debug().Err(err).Msg("feed cache write skipped")
	}
	return responses, total, nil
}

func (s *postService) ListByAuthor(ctx context.Context, email string) ([]*domain.PostResponse, error) {
	posts, err := s.posts.ListByAuthor(ctx, email)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, post.ToResponse())
	}
	return responses, nil
}

// Delete removes the author's own post. The consumed slot is not
// refunded.
func (s *postService) Delete(ctx context.Context, viewer string, id uint64) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorEmail != viewer {
		return common.ErrForbidden
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.DeletePost(ctx, id); err != nil {
			logger.GetLogger().Warn().Err(err).Uint64("post_id", id).Msg("search deindex failed")
		}
	}
	s.invalidateFeed(ctx)
	return nil
}

func (s *postService) React(ctx context.Context, viewer string, postID uint64, reactionType string) (*domain.PostResponse, error) {
	if !domain.IsKnownPostReaction(reactionType) {
		return nil, common.ErrUnknownReaction
	}
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if _, err := s.posts.SetReaction(ctx, postID, viewer, reactionType); err != nil {
		return nil, err
	}

	s.invalidateFeed(ctx)
	return s.decorate(ctx, viewer, post)
}

// Search resolves full-text matches through the search cluster, then
// hydrates from the database. Ids that vanished since indexing are
// skipped.
func (s *postService) Search(ctx context.Context, viewer, query string, limit int) ([]*domain.PostResponse, error) {
	if s.search == nil {
		return nil, common.ErrNotFound
	}

	ids, err := s.search.SearchPosts(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.PostResponse, 0, len(ids))
	for _, id := range ids {
		post, err := s.posts.FindByID(ctx, id)
		if err != nil {
			continue
		}
		resp, err := s.decorate(ctx, viewer, post)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *postService) decorate(ctx context.Context, viewer string, post *domain.Post) (*domain.PostResponse, error) {
	resp := post.ToResponse()

	counts, err := s.posts.ReactionCounts(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if len(counts) > 0 {
		resp.Reactions = counts
	}

	if viewer != "" {
		mine, err := s.posts.UserReaction(ctx, post.ID, viewer)
		if err != nil {
			return nil, err
		}
		resp.MyReact = mine
	}
	return resp, nil
}

func (s *postService) indexPost(ctx context.Context, post *domain.Post) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexPost(ctx, post); err != nil {
		logger.GetLogger().Warn().Err(err).Uint64("post_id", post.ID).Msg("search index failed")
	}
}

func (s *postService) invalidateFeed(ctx context.Context) {
	if err := s.cache.InvalidateFeed(ctx); err != nil {
		logger.GetLogger().Debug().Err(err).Msg("feed cache invalidation failed")
	}
}
