package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
	"github.com/coffeegram/coffee-backend/internal/repository"
)

func newFriendFixture(t *testing.T) (FriendService, *recordingPresence, *recordingQueue) {
	db := newTestDB(t)
	seedUser(t, db, "a@x.com")
	seedUser(t, db, "b@x.com")

	presence := newRecordingPresence(db)
	pushQueue := &recordingQueue{}
	svc := NewFriendService(
		repository.NewFriendshipRepository(db),
		repository.NewUserRepository(db),
		presence,
		pushQueue,
	)
	return svc, presence, pushQueue
}

func TestSendRequestLifecycle(t *testing.T) {
	svc, presence, pushQueue := newFriendFixture(t)
	ctx := context.Background()

	resp, err := svc.SendRequest(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, domain.FriendshipPending, resp.Status)
	require.NotNil(t, resp.Friend)
	assert.Equal(t, "b@x.com", resp.Friend.Email)

	// recipient sees the pending badge and gets a push
	state, err := presence.State(ctx, "b@x.com")
	require.NoError(t, err)
	assert.True(t, state.HasPendingFriendRequest)
	assert.Equal(t, []string{"b@x.com"}, pushQueue.pushes)

	accepted, err := svc.Accept(ctx, "b@x.com", resp.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FriendshipAccepted, accepted.Status)

	state, err = presence.State(ctx, "b@x.com")
	require.NoError(t, err)
	assert.False(t, state.HasPendingFriendRequest)
}

func TestSendRequestRejectsSelf(t *testing.T) {
	svc, _, _ := newFriendFixture(t)

	_, err := svc.SendRequest(context.Background(), "a@x.com", "a@x.com")
	assert.ErrorIs(t, err, common.ErrSelfFriendship)
}

func TestSendRequestRejectsDuplicate(t *testing.T) {
	svc, _, _ := newFriendFixture(t)
	ctx := context.Background()

	_, err := svc.SendRequest(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	_, err = svc.SendRequest(ctx, "b@x.com", "a@x.com")
	assert.ErrorIs(t, err, common.ErrFriendshipExists)
}

func TestAcceptOnlyByRecipient(t *testing.T) {
	svc, _, _ := newFriendFixture(t)
	ctx := context.Background()

	resp, err := svc.SendRequest(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	// the sender cannot accept their own request
	_, err = svc.Accept(ctx, "a@x.com", resp.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestRemoveDeclinesPending(t *testing.T) {
	svc, presence, _ := newFriendFixture(t)
	ctx := context.Background()

	resp, err := svc.SendRequest(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "b@x.com", resp.ID))

	state, err := presence.State(ctx, "b@x.com")
	require.NoError(t, err)
	assert.False(t, state.HasPendingFriendRequest)

	edges, err := svc.List(ctx, "a@x.com", "")
	require.NoError(t, err)
	assert.Empty(t, edges)
}
