package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
)

func TestCommentListOrdersOldestFirst(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	post := &domain.Post{AuthorEmail: "a@x.com", Caption: "coffee"}
	require.NoError(t, posts.Create(ctx, post))

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, comments.Create(ctx, &domain.Comment{
			PostID:    post.ID,
			UserEmail: "b@x.com",
			Text:      text,
		}))
	}

	listed, err := comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "first", listed[0].Text)
	assert.Equal(t, "third", listed[2].Text)

	count, err := comments.CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestCommentDelete(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	post := &domain.Post{AuthorEmail: "a@x.com", Caption: "coffee"}
	require.NoError(t, posts.Create(ctx, post))

	comment := &domain.Comment{PostID: post.ID, UserEmail: "b@x.com", Text: "nice"}
	require.NoError(t, comments.Create(ctx, comment))

	require.NoError(t, comments.Delete(ctx, comment.ID))
	assert.ErrorIs(t, comments.Delete(ctx, comment.ID), common.ErrCommentNotFound)

	_, err := comments.FindByID(ctx, comment.ID)
	assert.ErrorIs(t, err, common.ErrCommentNotFound)
}

func TestPostDeleteRemovesComments(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	post := &domain.Post{AuthorEmail: "a@x.com", Caption: "coffee"}
	require.NoError(t, posts.Create(ctx, post))
	require.NoError(t, comments.Create(ctx, &domain.Comment{
		PostID: post.ID, UserEmail: "b@x.com", Text: "nice",
	}))

	require.NoError(t, posts.Delete(ctx, post.ID))

	count, err := comments.CountByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
