package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"buildxpert/internal/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256
)

// IncomingFrame is a client -> server control frame.
type IncomingFrame struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// Client is one WebSocket connection bound to an authenticated user.
type Client struct {
	UserID  string
	Conn    *websocket.Conn
	Send    chan Event
	Manager *Manager
}

func (c *Client) readPump() {
	defer func() {
		c.Manager.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msgBytes, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("ws read error", "user_id", c.UserID, "error", err)
			}
			break
		}

		var frame IncomingFrame
		if err := json.Unmarshal(msgBytes, &frame); err != nil {
			logger.Warn("ws unparseable frame", "user_id", c.UserID, "error", err)
			continue
		}

		c.handleFrame(frame)
	}
}

func (c *Client) writePump() {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(event); err != nil {
				logger.Warn("ws write error", "user_id", c.UserID, "error", err)
				return
			}

		case <-ping.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleFrame processes client control frames. Room membership is
// derived from the authenticated identity at handshake time; a join
// frame naming a different user id is rejected.
func (c *Client) handleFrame(frame IncomingFrame) {
	switch frame.Action {
	case "join":
		var payload struct {
			UserID string `json:"user_id"`
		}
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			logger.Warn("ws invalid join payload", "user_id", c.UserID, "error", err)
			return
		}
		if payload.UserID != "" && payload.UserID != c.UserID {
			c.trySend(Event{Event: "error", Data: "cannot join another user's room"})
			logger.Warn("ws rejected join for foreign room",
				"user_id", c.UserID, "claimed", payload.UserID)
			return
		}
		c.trySend(Event{Event: "joined", Data: c.UserID})

	default:
		logger.Debug("ws unhandled action", "action", frame.Action)
	}
}

func (c *Client) trySend(event Event) {
	select {
	case c.Send <- event:
	default:
	}
}
