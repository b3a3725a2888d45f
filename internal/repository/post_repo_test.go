package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/coffeegram/coffee-backend/internal/domain"
)

func seedPost(t *testing.T, db *gorm.DB, author string) *domain.Post {
	t.Helper()
	post := &domain.Post{AuthorEmail: author, Caption: "caption"}
	require.NoError(t, db.Create(post).Error)
	return post
}

func TestSetReactionTogglesAndCounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := seedPost(t, db, "a@x.com")

	// insert
	removed, err := repo.SetReaction(ctx, post.ID, "b@x.com", domain.ReactionLove)
	require.NoError(t, err)
	assert.False(t, removed)

	counts, err := repo.ReactionCounts(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[domain.ReactionLove])

	// replace
	removed, err = repo.SetReaction(ctx, post.ID, "b@x.com", domain.ReactionFunny)
	require.NoError(t, err)
	assert.False(t, removed)

	counts, err = repo.ReactionCounts(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, counts[domain.ReactionLove])
	assert.Equal(t, int64(1), counts[domain.ReactionFunny])

	// remove
	removed, err = repo.SetReaction(ctx, post.ID, "b@x.com", domain.ReactionFunny)
	require.NoError(t, err)
	assert.True(t, removed)

	counts, err = repo.ReactionCounts(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestSetReactionAggregatesUsers(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := seedPost(t, db, "a@x.com")

	_, err := repo.SetReaction(ctx, post.ID, "b@x.com", domain.ReactionLike)
	require.NoError(t, err)
	_, err = repo.SetReaction(ctx, post.ID, "c@x.com", domain.ReactionLike)
	require.NoError(t, err)
	_, err = repo.SetReaction(ctx, post.ID, "d@x.com", domain.ReactionDislike)
	require.NoError(t, err)

	counts, err := repo.ReactionCounts(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[domain.ReactionLike])
	assert.Equal(t, int64(1), counts[domain.ReactionDislike])

	mine, err := repo.UserReaction(ctx, post.ID, "c@x.com")
	require.NoError(t, err)
	assert.Equal(t, domain.ReactionLike, mine)

	none, err := repo.UserReaction(ctx, post.ID, "ghost@x.com")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeletePostRemovesReactions(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := seedPost(t, db, "a@x.com")
	_, err := repo.SetReaction(ctx, post.ID, "b@x.com", domain.ReactionLove)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err = repo.FindByID(ctx, post.ID)
	assert.Error(t, err)

	var reactionRows int64
	require.NoError(t, db.Model(&domain.PostReaction{}).Count(&reactionRows).Error)
	assert.Zero(t, reactionRows)
}

func TestListFeedPaginates(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedPost(t, db, "a@x.com")
	}

	posts, total, err := repo.ListFeed(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, posts, 2)

	posts, _, err = repo.ListFeed(ctx, 2, 4)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}
