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

func newRoomFixture(t *testing.T) (RoomService, MessageService, *recordingPresence) {
	db := newTestDB(t)
	seedUser(t, db, "a@x.com")
	seedUser(t, db, "b@x.com")

	rooms := repository.NewRoomRepository(db)
	messages := repository.NewMessageRepository(db)
	users := repository.NewUserRepository(db)
	presence := newRecordingPresence(db)

	roomService := NewRoomService(rooms, users, presence)
	messageService := NewMessageService(messages, rooms, presence, nil)
	return roomService, messageService, presence
}

func TestResolveOrCreateIsStable(t *testing.T) {
	roomService, _, _ := newRoomFixture(t)
	ctx := context.Background()

	first, err := roomService.ResolveOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	second, err := roomService.ResolveOrCreate(ctx, "b@x.com", "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestResolveOrCreateRejectsSelf(t *testing.T) {
	roomService, _, _ := newRoomFixture(t)

	_, err := roomService.ResolveOrCreate(context.Background(), "a@x.com", "a@x.com")
	assert.ErrorIs(t, err, common.ErrSelfMessage)
}

func TestResolveOrCreateRejectsUnknownOther(t *testing.T) {
	roomService, _, _ := newRoomFixture(t)

	_, err := roomService.ResolveOrCreate(context.Background(), "a@x.com", "ghost@x.com")
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestResolveClearsViewerUnread(t *testing.T) {
	roomService, messageService, _ := newRoomFixture(t)
	ctx := context.Background()

	room, err := roomService.ResolveOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	_, err = messageService.Send(ctx, "a@x.com", room.ID, &domain.SendMessageRequest{
		Content: "hello", CreatedAt: 1000,
	})
	require.NoError(t, err)

	// b opens the room; their unread flag clears, a's state is untouched
	opened, err := roomService.ResolveOrCreate(ctx, "b@x.com", "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, opened.UnreadBy)

	reloaded, err := roomService.Get(ctx, "a@x.com", room.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.UnreadBy)
}

func TestMarkReadRecomputesBadges(t *testing.T) {
	roomService, messageService, presence := newRoomFixture(t)
	ctx := context.Background()

	room, err := roomService.ResolveOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	_, err = messageService.Send(ctx, "a@x.com", room.ID, &domain.SendMessageRequest{
		Content: "ping", CreatedAt: 1000,
	})
	require.NoError(t, err)

	state, err := presence.State(ctx, "b@x.com")
	require.NoError(t, err)
	assert.True(t, state.HasUnreadMessages)

	require.NoError(t, roomService.MarkRead(ctx, "b@x.com", room.ID))

	state, err = presence.State(ctx, "b@x.com")
	require.NoError(t, err)
	assert.False(t, state.HasUnreadMessages)
	assert.Contains(t, presence.recomputed, "b@x.com")
}

func TestGetRejectsNonMember(t *testing.T) {
	roomService, _, _ := newRoomFixture(t)
	ctx := context.Background()

	room, err := roomService.ResolveOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	_, err = roomService.Get(ctx, "stranger@x.com", room.ID)
	assert.ErrorIs(t, err, common.ErrNotRoomMember)
}
