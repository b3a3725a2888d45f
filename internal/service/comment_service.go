package service

import (
	"context"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/repository"
)

// CommentService handles comments under posts
type CommentService interface {
	Add(ctx context.Context, author string, postID uint64, req *domain.CreateCommentRequest) (*domain.CommentResponse, error)
	List(ctx context.Context, postID uint64) ([]*domain.CommentResponse, error)
	Remove(ctx context.Context, viewer string, postID, commentID uint64) error
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

// NewCommentService creates a new comment service
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) CommentService {
	return &commentService{comments: comments, posts: posts}
}

// Add writes a comment under an existing post
func (s *commentService) Add(ctx context.Context, author string, postID uint64, req *domain.CreateCommentRequest) (*domain.CommentResponse, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		PostID:    postID,
		UserEmail: author,
		Text:      req.Text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment.ToResponse(), nil
}

func (s *commentService) List(ctx context.Context, postID uint64) ([]*domain.CommentResponse, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, comment.ToResponse())
	}
	return responses, nil
}

// Remove deletes a comment. The comment's author and the post's
// author may remove it, nobody else.
func (s *commentService) Remove(ctx context.Context, viewer string, postID, commentID uint64) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.PostID != postID {
		return common.ErrCommentNotFound
	}

	if comment.UserEmail != viewer {
		post, err := s.posts.FindByID(ctx, postID)
		if err != nil {
			return err
		}
		if post.AuthorEmail != viewer {
			return common.ErrForbidden
		}
	}

	return s.comments.Delete(ctx, comment.ID)
}
