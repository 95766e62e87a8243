package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestClient(userID string) *Client {
	return &Client{
		UserID: userID,
		Send:   make(chan Event, 4),
	}
}

func registerAndWait(t *testing.T, m *Manager, c *Client) {
	t.Helper()
	want := m.RoomSize(c.UserID) + 1
	m.register <- c
	assert.Eventually(t, func() bool {
		return m.RoomSize(c.UserID) >= want
	}, time.Second, 5*time.Millisecond)
}

func TestEmit_DeliversToEverySessionInRoom(t *testing.T) {
	m := NewManager()
	go m.Run()

	first := newTestClient("u1")
	second := newTestClient("u1")
	registerAndWait(t, m, first)
	registerAndWait(t, m, second)
	assert.Equal(t, 2, m.RoomSize("u1"))

	m.Emit("u1", "new_message", "payload")

	for _, c := range []*Client{first, second} {
		select {
		case ev := <-c.Send:
			assert.Equal(t, "new_message", ev.Event)
			assert.Equal(t, "payload", ev.Data)
		default:
			t.Fatal("expected event in send buffer")
		}
	}
}

func TestEmit_EmptyRoomDropsEvent(t *testing.T) {
	m := NewManager()
	go m.Run()

	// No client for u2; must not block or panic.
	m.Emit("u2", "new_message", "payload")
	assert.Equal(t, 0, m.RoomSize("u2"))
}

func TestEmit_DoesNotLeakAcrossRooms(t *testing.T) {
	m := NewManager()
	go m.Run()

	alpha := newTestClient("alpha")
	beta := newTestClient("beta")
	registerAndWait(t, m, alpha)
	registerAndWait(t, m, beta)

	m.Emit("alpha", "new_message", "for-alpha")

	select {
	case <-beta.Send:
		t.Fatal("event leaked into another user's room")
	default:
	}
	assert.Len(t, alpha.Send, 1)
}

func TestEmit_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	m := NewManager()
	go m.Run()

	c := &Client{UserID: "u3", Send: make(chan Event)}
	registerAndWait(t, m, c)

	done := make(chan struct{})
	go func() {
		m.Emit("u3", "new_message", "payload")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a full send buffer")
	}
}

func TestUnregister_RemovesClientAndClosesSend(t *testing.T) {
	m := NewManager()
	go m.Run()

	c := newTestClient("u4")
	registerAndWait(t, m, c)

	m.unregister <- c
	assert.Eventually(t, func() bool {
		return m.RoomSize("u4") == 0
	}, time.Second, 5*time.Millisecond)

	_, open := <-c.Send
	assert.False(t, open, "send channel should be closed on unregister")
}
