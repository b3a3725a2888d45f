package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeegram/coffee-backend/internal/common"
	"github.com/coffeegram/coffee-backend/internal/domain"
)

func testMessage(roomID uint64, sender, content string, createdAt int64) *domain.Message {
	return &domain.Message{
		RoomID:    roomID,
		Sender:    sender,
		Kind:      domain.MessageKindText,
		Content:   content,
		CreatedAt: createdAt,
	}
}

func TestAppendUpdatesRoomSummary(t *testing.T) {
	db := newTestDB(t)
	rooms := NewRoomRepository(db)
	messages := NewMessageRepository(db)
	ctx := context.Background()

	room, _, err := rooms.GetOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	require.NoError(t, messages.Append(ctx, testMessage(room.ID, "a@x.com", "hello", 1000)))

	updated, err := rooms.FindByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.LastMessage)
	assert.Equal(t, "a@x.com", updated.LastSender)
	assert.Equal(t, domain.MessageKindText, updated.LastKind)
	assert.Equal(t, []string{"b@x.com"}, updated.UnreadBy())
}

func TestAppendRejectsNonMember(t *testing.T) {
	db := newTestDB(t)
	rooms := NewRoomRepository(db)
	messages := NewMessageRepository(db)
	ctx := context.Background()

	room, _, err := rooms.GetOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	err = messages.Append(ctx, testMessage(room.ID, "stranger@x.com", "hi", 1000))
	assert.ErrorIs(t, err, common.ErrNotRoomMember)

	history, err := messages.ListByRoom(ctx, room.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestListByRoomOrdersByClientTimestamp(t *testing.T) {
	db := newTestDB(t)
	rooms := NewRoomRepository(db)
	messages := NewMessageRepository(db)
	ctx := context.Background()

	room, _, err := rooms.GetOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	// inserted out of order on purpose
	require.NoError(t, messages.Append(ctx, testMessage(room.ID, "a@x.com", "third", 3000)))
	require.NoError(t, messages.Append(ctx, testMessage(room.ID, "b@x.com", "first", 1000)))
	require.NoError(t, messages.Append(ctx, testMessage(room.ID, "a@x.com", "second", 2000)))

	history, err := messages.ListByRoom(ctx, room.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "first", history[0].Content)
	assert.Equal(t, "second", history[1].Content)
	assert.Equal(t, "third", history[2].Content)
}

func TestToggleReaction(t *testing.T) {
	db := newTestDB(t)
	rooms := NewRoomRepository(db)
	messages := NewMessageRepository(db)
	ctx := context.Background()

	room, _, err := rooms.GetOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	msg := testMessage(room.ID, "a@x.com", "hello", 1000)
	require.NoError(t, messages.Append(ctx, msg))

	// first reaction inserts
	removed, err := messages.ToggleReaction(ctx, msg.ID, "b@x.com", "😎")
	require.NoError(t, err)
	assert.False(t, removed)

	loaded, err := messages.FindByID(ctx, msg.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Reactions, 1)
	assert.Equal(t, "😎", loaded.Reactions[0].Emoji)

	// different emoji replaces
	removed, err = messages.ToggleReaction(ctx, msg.ID, "b@x.com", "🤔")
	require.NoError(t, err)
	assert.False(t, removed)

	loaded, err = messages.FindByID(ctx, msg.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Reactions, 1)
	assert.Equal(t, "🤔", loaded.Reactions[0].Emoji)

	// same emoji removes
	removed, err = messages.ToggleReaction(ctx, msg.ID, "b@x.com", "🤔")
	require.NoError(t, err)
	assert.True(t, removed)

	loaded, err = messages.FindByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Reactions)
}

func TestToggleReactionPerUser(t *testing.T) {
	db := newTestDB(t)
	rooms := NewRoomRepository(db)
	messages := NewMessageRepository(db)
	ctx := context.Background()

	room, _, err := rooms.GetOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	msg := testMessage(room.ID, "a@x.com", "hello", 1000)
	require.NoError(t, messages.Append(ctx, msg))

	_, err = messages.ToggleReaction(ctx, msg.ID, "a@x.com", "❤️")
	require.NoError(t, err)
	_, err = messages.ToggleReaction(ctx, msg.ID, "b@x.com", "😂")
	require.NoError(t, err)

	loaded, err := messages.FindByID(ctx, msg.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Reactions, 2)

	resp := loaded.ToResponse()
	assert.Equal(t, "❤️", resp.Reactions["a@x.com"])
	assert.Equal(t, "😂", resp.Reactions["b@x.com"])
}
