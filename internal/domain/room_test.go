package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomPairKey(t *testing.T) {
	// order of arguments must not matter
	assert.Equal(t, RoomPairKey("a@x.com", "b@x.com"), RoomPairKey("b@x.com", "a@x.com"))
	assert.Equal(t, "a@x.com|b@x.com", RoomPairKey("b@x.com", "a@x.com"))
	assert.NotEqual(t, RoomPairKey("a@x.com", "b@x.com"), RoomPairKey("a@x.com", "c@x.com"))
}

func TestUnreadBy(t *testing.T) {
	room := &Room{Sender: "a@x.com", Receiver: "b@x.com"}
	assert.Empty(t, room.UnreadBy())

	room.UnreadReceiver = true
	assert.Equal(t, []string{"b@x.com"}, room.UnreadBy())
	assert.True(t, room.IsUnreadBy("b@x.com"))
	assert.False(t, room.IsUnreadBy("a@x.com"))

	room.UnreadSender = true
	assert.ElementsMatch(t, []string{"a@x.com", "b@x.com"}, room.UnreadBy())
}

func TestOtherSide(t *testing.T) {
	room := &Room{Sender: "a@x.com", Receiver: "b@x.com"}
	assert.Equal(t, "b@x.com", room.OtherSide("a@x.com"))
	assert.Equal(t, "a@x.com", room.OtherSide("b@x.com"))
}
