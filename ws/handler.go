package ws

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"buildxpert/internal/logger"
)

type Handler struct {
	Manager  *Manager
	upgrader websocket.Upgrader
}

// NewHandler builds the upgrade handler. frontendOrigin is the one
// browser origin allowed to open sockets; the session cookie rides
// along on cross-site requests, so handshakes from any other origin
// are refused before the upgrade.
func NewHandler(manager *Manager, frontendOrigin string) *Handler {
	return &Handler{
		Manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(r, frontendOrigin)
			},
		},
	}
}

// originAllowed accepts requests without an Origin header (non-browser
// clients cannot be cookie-ridden), same-origin requests, and the
// configured frontend origin. Everything else is rejected.
func originAllowed(r *http.Request, frontendOrigin string) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}

	return frontendOrigin != "" &&
		strings.EqualFold(strings.TrimSuffix(origin, "/"), strings.TrimSuffix(frontendOrigin, "/"))
}

// ServeWS upgrades the connection and places it in the room of the
// authenticated user. The identity comes from the auth middleware, not
// from the client, so a connection can only ever join its own room.
func (h *Handler) ServeWS(c *gin.Context) {
	userIDVal, exists := c.Get("userID")
	userID, _ := userIDVal.(string)
	if !exists || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("ws upgrade failed", "error", err)
		return
	}

	client := &Client{
		UserID:  userID,
		Conn:    conn,
		Send:    make(chan Event, sendBufferSize),
		Manager: h.Manager,
	}

	h.Manager.register <- client

	go client.readPump()
	go client.writePump()
}
