package ws

import (
	"sync"

	"buildxpert/internal/logger"
)

// Event is the frame sent to clients.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Manager keeps one room per user id. A user with several open
// sessions has several clients in the same room; all of them receive
// the room's events.
type Manager struct {
	rooms      map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		rooms:      make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes register/unregister events. Call once in a goroutine.
func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			if m.rooms[client.UserID] == nil {
				m.rooms[client.UserID] = make(map[*Client]struct{})
			}
			m.rooms[client.UserID][client] = struct{}{}
			size := len(m.rooms[client.UserID])
			m.mu.Unlock()
			logger.Info("ws client joined", "user_id", client.UserID, "room_size", size)

		case client := <-m.unregister:
			m.mu.Lock()
			if room, ok := m.rooms[client.UserID]; ok {
				if _, ok := room[client]; ok {
					delete(room, client)
					close(client.Send)
					if len(room) == 0 {
						delete(m.rooms, client.UserID)
					}
				}
			}
			m.mu.Unlock()
			logger.Info("ws client left", "user_id", client.UserID)
		}
	}
}

// Emit delivers an event to every connection in the user's room. If the
// room is empty, or a client's send buffer is full, the event is
// dropped; clients catch up through the HTTP API.
func (m *Manager) Emit(userID, event string, payload any) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for client := range m.rooms[userID] {
		select {
		case client.Send <- Event{Event: event, Data: payload}:
		default:
			logger.Warn("ws send buffer full, dropping event", "user_id", userID, "event", event)
		}
	}
}

// RoomSize reports how many connections a user currently holds.
func (m *Manager) RoomSize(userID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms[userID])
}
