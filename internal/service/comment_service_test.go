package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/repository"
	"github.com/coffeegram/coffee-backend/pkg/cache"
)

func newCommentFixture(t *testing.T) (CommentService, PostService) {
	db := newTestDB(t)
	seedUser(t, db, "a@x.com")
	seedUser(t, db, "b@x.com")
	seedUser(t, db, "c@x.com")

	posts := repository.NewPostRepository(db)
	postService := NewPostService(posts, repository.NewUserRepository(db), cache.NewService(nil), nil)
	commentService := NewCommentService(repository.NewCommentRepository(db), posts)
	return commentService, postService
}

func TestCommentLifecycle(t *testing.T) {
	comments, posts := newCommentFixture(t)
	ctx := context.Background()

	post, err := posts.Create(ctx, "a@x.com", &domain.CreatePostRequest{Caption: "latte art"})
	require.NoError(t, err)

	added, err := comments.Add(ctx, "b@x.com", post.ID, &domain.CreateCommentRequest{Text: "looks great"})
	require.NoError(t, err)
	assert.Equal(t, "b@x.com", added.User)
	assert.Equal(t, post.ID, added.PostID)

	listed, err := comments.List(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "looks great", listed[0].Text)

	require.NoError(t, comments.Remove(ctx, "b@x.com", post.ID, added.ID))

	listed, err = comments.List(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCommentRejectsUnknownPost(t *testing.T) {
	comments, _ := newCommentFixture(t)
	ctx := context.Background()

	_, err := comments.Add(ctx, "b@x.com", 999, &domain.CreateCommentRequest{Text: "hi"})
	assert.ErrorIs(t, err, common.ErrPostNotFound)

	_, err = comments.List(ctx, 999)
	assert.ErrorIs(t, err, common.ErrPostNotFound)
}

func TestCommentRemovePermissions(t *testing.T) {
	comments, posts := newCommentFixture(t)
	ctx := context.Background()

	post, err := posts.Create(ctx, "a@x.com", &domain.CreatePostRequest{Caption: "espresso"})
	require.NoError(t, err)

	added, err := comments.Add(ctx, "b@x.com", post.ID, &domain.CreateCommentRequest{Text: "too dark"})
	require.NoError(t, err)

	// a bystander cannot remove it
	err = comments.Remove(ctx, "c@x.com", post.ID, added.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)

	// the post author can moderate comments on their post
	require.NoError(t, comments.Remove(ctx, "a@x.com", post.ID, added.ID))
}

func TestCommentRemoveChecksPost(t *testing.T) {
	comments, posts := newCommentFixture(t)
	ctx := context.Background()

	first, err := posts.Create(ctx, "a@x.com", &domain.CreatePostRequest{Caption: "one"})
	require.NoError(t, err)
	second, err := posts.Create(ctx, "a@x.com", &domain.CreatePostRequest{Caption: "two"})
	require.NoError(t, err)

	added, err := comments.Add(ctx, "b@x.com", first.ID, &domain.CreateCommentRequest{Text: "hi"})
	require.NoError(t, err)

	err = comments.Remove(ctx, "b@x.com", second.ID, added.ID)
	assert.ErrorIs(t, err, common.ErrCommentNotFound)
}
