package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
)

func TestFriendshipCreateRejectsDuplicatePair(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)
	ctx := context.Background()

	first := &domain.Friendship{From: "a@x.com", To: "b@x.com", Status: domain.FriendshipPending}
	require.NoError(t, repo.Create(ctx, first))

	// same pair, same direction
	err := repo.Create(ctx, &domain.Friendship{From: "a@x.com", To: "b@x.com", Status: domain.FriendshipPending})
	assert.ErrorIs(t, err, common.ErrFriendshipExists)

	// same pair, reversed direction
	err = repo.Create(ctx, &domain.Friendship{From: "b@x.com", To: "a@x.com", Status: domain.FriendshipPending})
	assert.ErrorIs(t, err, common.ErrFriendshipExists)
}

func TestFriendshipLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db)
	ctx := context.Background()

	edge := &domain.Friendship{From: "a@x.com", To: "b@x.com", Status: domain.FriendshipPending}
	require.NoError(t, repo.Create(ctx, edge))

	pending, err := repo.HasPendingTo(ctx, "b@x.com")
	require.NoError(t, err)
	assert.True(t, pending)

	// the sender has no incoming request
	pending, err = repo.HasPendingTo(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, pending)

	require.NoError(t, repo.UpdateStatus(ctx, edge.ID, domain.FriendshipAccepted))

	pending, err = repo.HasPendingTo(ctx, "b@x.com")
	require.NoError(t, err)
	assert.False(t, pending)

	accepted, err := repo.ListForUser(ctx, "a@x.com", domain.FriendshipAccepted)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, "b@x.com", accepted[0].OtherSide("a@x.com"))

	require.NoError(t, repo.Delete(ctx, edge.ID))
	_, err = repo.FindBetween(ctx, "a@x.com", "b@x.com")
	assert.ErrorIs(t, err, common.ErrFriendshipNotFound)
}
