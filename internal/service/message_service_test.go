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

func TestSendNotifiesReceiver(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "a@x.com")
	seedUser(t, db, "b@x.com")

	rooms := repository.NewRoomRepository(db)
	messages := repository.NewMessageRepository(db)
	users := repository.NewUserRepository(db)
	presence := newRecordingPresence(db)
	pushQueue := &recordingQueue{}

	roomService := NewRoomService(rooms, users, presence)
	messageService := NewMessageService(messages, rooms, presence, pushQueue)
	ctx := context.Background()

	room, err := roomService.ResolveOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	resp, err := messageService.Send(ctx, "a@x.com", room.ID, &domain.SendMessageRequest{
		Content: "hello", CreatedAt: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Content)
	assert.Equal(t, domain.MessageKindText, resp.Kind)

	assert.Contains(t, presence.recomputed, "b@x.com")
	assert.Equal(t, []string{"b@x.com"}, pushQueue.pushes)
}

func TestSendRejectsNonMember(t *testing.T) {
	roomService, messageService, _ := newRoomFixture(t)
	ctx := context.Background()

	room, err := roomService.ResolveOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	_, err = messageService.Send(ctx, "stranger@x.com", room.ID, &domain.SendMessageRequest{
		Content: "hi",
	})
	assert.ErrorIs(t, err, common.ErrNotRoomMember)
}

func TestSendRejectsUnknownKind(t *testing.T) {
	roomService, messageService, _ := newRoomFixture(t)
	ctx := context.Background()

	room, err := roomService.ResolveOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	_, err = messageService.Send(ctx, "a@x.com", room.ID, &domain.SendMessageRequest{
		Kind: "video", Content: "x",
	})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestListSortsByClientTimestamp(t *testing.T) {
	roomService, messageService, _ := newRoomFixture(t)
	ctx := context.Background()

	room, err := roomService.ResolveOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	for _, m := range []struct {
		content string
		at      int64
	}{
		{"late", 5000},
		{"early", 1000},
		{"middle", 3000},
	} {
		_, err := messageService.Send(ctx, "a@x.com", room.ID, &domain.SendMessageRequest{
			Content: m.content, CreatedAt: m.at,
		})
		require.NoError(t, err)
	}

	history, err := messageService.List(ctx, "b@x.com", room.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "early", history[0].Content)
	assert.Equal(t, "middle", history[1].Content)
	assert.Equal(t, "late", history[2].Content)
}

func TestReactValidatesEmoji(t *testing.T) {
	roomService, messageService, _ := newRoomFixture(t)
	ctx := context.Background()

	room, err := roomService.ResolveOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	msg, err := messageService.Send(ctx, "a@x.com", room.ID, &domain.SendMessageRequest{
		Content: "hello", CreatedAt: 1000,
	})
	require.NoError(t, err)

	_, err = messageService.React(ctx, "b@x.com", room.ID, msg.ID, "🦄")
	assert.ErrorIs(t, err, common.ErrUnknownReaction)

	reacted, err := messageService.React(ctx, "b@x.com", room.ID, msg.ID, "😍")
	require.NoError(t, err)
	assert.Equal(t, "😍", reacted.Reactions["b@x.com"])
}

func TestSendAcceptsImageKind(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "a@x.com")
	seedUser(t, db, "b@x.com")

	rooms := repository.NewRoomRepository(db)
	messages := repository.NewMessageRepository(db)
	users := repository.NewUserRepository(db)
	presence := newRecordingPresence(db)

	roomService := NewRoomService(rooms, users, presence)
	messageService := NewMessageService(messages, rooms, presence, nil)
	ctx := context.Background()

	room, err := roomService.ResolveOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	resp, err := messageService.Send(ctx, "a@x.com", room.ID, &domain.SendMessageRequest{
		Kind: "image", Content: "https://cdn.example.com/photo.jpg", CreatedAt: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageKindImage, resp.Kind)

	updated, err := rooms.FindByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "image", updated.LastKind)

	// "img" is not a kind the clients send
	_, err = messageService.Send(ctx, "a@x.com", room.ID, &domain.SendMessageRequest{
		Kind: "img", Content: "x",
	})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}
