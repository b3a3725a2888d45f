package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateReturnsSameRoomForBothDirections(t *testing.T) {
	db := newTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	room1, created, err := repo.GetOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)
	assert.True(t, created)

	// resolving from the other side must hit the same row
	room2, created, err := repo.GetOrCreate(ctx, "b@x.com", "a@x.com")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, room1.ID, room2.ID)

	room3, created, err := repo.GetOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, room1.ID, room3.ID)
}

func TestGetOrCreateKeepsPairsSeparate(t *testing.T) {
	db := newTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	ab, _, err := repo.GetOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)
	ac, _, err := repo.GetOrCreate(ctx, "a@x.com", "c@x.com")
	require.NoError(t, err)

	assert.NotEqual(t, ab.ID, ac.ID)
}

func TestMarkReadClearsOnlyViewer(t *testing.T) {
	db := newTestDB(t)
	rooms := NewRoomRepository(db)
	messages := NewMessageRepository(db)
	ctx := context.Background()

	room, _, err := rooms.GetOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	require.NoError(t, messages.Append(ctx, testMessage(room.ID, "a@x.com", "hi", 1000)))
	require.NoError(t, messages.Append(ctx, testMessage(room.ID, "b@x.com", "hey", 2000)))

	// both sides have sent, both are unread
	updated, err := rooms.FindByID(ctx, room.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a@x.com", "b@x.com"}, updated.UnreadBy())

	require.NoError(t, rooms.MarkRead(ctx, room.ID, "a@x.com"))

	updated, err = rooms.FindByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b@x.com"}, updated.UnreadBy())
}

func TestMarkReadRejectsNonMember(t *testing.T) {
	db := newTestDB(t)
	rooms := NewRoomRepository(db)
	ctx := context.Background()

	room, _, err := rooms.GetOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	err = rooms.MarkRead(ctx, room.ID, "stranger@x.com")
	assert.Error(t, err)
}

func TestHasUnreadFor(t *testing.T) {
	db := newTestDB(t)
	rooms := NewRoomRepository(db)
	messages := NewMessageRepository(db)
	ctx := context.Background()

	room, _, err := rooms.GetOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	unread, err := rooms.HasUnreadFor(ctx, "b@x.com")
	require.NoError(t, err)
	assert.False(t, unread)

	require.NoError(t, messages.Append(ctx, testMessage(room.ID, "a@x.com", "hi", 1000)))

	unread, err = rooms.HasUnreadFor(ctx, "b@x.com")
	require.NoError(t, err)
	assert.True(t, unread)

	unread, err = rooms.HasUnreadFor(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, unread)
}

func TestUpdateConfig(t *testing.T) {
	db := newTestDB(t)
	rooms := NewRoomRepository(db)
	ctx := context.Background()

	room, _, err := rooms.GetOrCreate(ctx, "a@x.com", "b@x.com")
	require.NoError(t, err)

	require.NoError(t, rooms.UpdateConfig(ctx, room.ID, "dark", "monospace"))

	updated, err := rooms.FindByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "dark", updated.Background)
	assert.Equal(t, "monospace", updated.FontFamily)
}
