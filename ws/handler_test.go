package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frontendOrigin = "https://app.buildxpert.test"

// newHandshakeServer authenticates from the bx_session cookie the way
// a browser-attached credential would, so cross-site requests arrive
// authenticated and only the origin check stands between an attacker
// page and the victim's room.
func newHandshakeServer(m *Manager) *httptest.Server {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewHandler(m, frontendOrigin)
	router.GET("/ws", func(c *gin.Context) {
		if cookie, err := c.Cookie("bx_session"); err == nil && cookie != "" {
			c.Set("userID", cookie)
		}
		h.ServeWS(c)
	})

	return httptest.NewServer(router)
}

func dialWS(t *testing.T, server *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()

	header := http.Header{}
	header.Set("Cookie", "bx_session=victim-user")
	if origin != "" {
		header.Set("Origin", origin)
	}

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	return websocket.DefaultDialer.Dial(url, header)
}

func TestServeWS_RejectsForeignOrigin(t *testing.T) {
	m := NewManager()
	go m.Run()

	server := newHandshakeServer(m)
	defer server.Close()

	// A cross-site page gets the cookie attached by the browser, but
	// the handshake must still fail on Origin.
	conn, resp, err := dialWS(t, server, "https://evil.example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Nil(t, conn)

	assert.Equal(t, 0, m.RoomSize("victim-user"))
}

func TestServeWS_AcceptsConfiguredFrontendOrigin(t *testing.T) {
	m := NewManager()
	go m.Run()

	server := newHandshakeServer(m)
	defer server.Close()

	conn, _, err := dialWS(t, server, frontendOrigin)
	require.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool {
		return m.RoomSize("victim-user") == 1
	}, time.Second, 5*time.Millisecond)
}

func TestServeWS_AcceptsNonBrowserClientWithoutOrigin(t *testing.T) {
	m := NewManager()
	go m.Run()

	server := newHandshakeServer(m)
	defer server.Close()

	conn, _, err := dialWS(t, server, "")
	require.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool {
		return m.RoomSize("victim-user") == 1
	}, time.Second, 5*time.Millisecond)
}

func TestOriginAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Host = "api.buildxpert.test"

	cases := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"https://app.buildxpert.test", true},
		{"https://app.buildxpert.test/", true},
		{"http://api.buildxpert.test", true}, // same host as the request
		{"https://evil.example.com", false},
		{"https://app.buildxpert.test.evil.example.com", false},
		{"://bad origin", false},
	}
	for _, tc := range cases {
		if tc.origin != "" {
			req.Header.Set("Origin", tc.origin)
		} else {
			req.Header.Del("Origin")
		}
		assert.Equal(t, tc.want, originAllowed(req, frontendOrigin), "origin %q", tc.origin)
	}
}
