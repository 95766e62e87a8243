package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildxpert/internal/dto"
	"buildxpert/test/helpers"
)

func TestRegisterAndLogin(t *testing.T) {
	server := helpers.GetTestServer(t)
	server.ClearTables(t)

	w := server.SendRequest(t, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{
		Name:     "Dana Client",
		Email:    "dana@example.com",
		Password: "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered dto.AuthResponse
	helpers.DecodeJSON(t, w, &registered)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)
	assert.Equal(t, "dana@example.com", registered.User.Email)
	assert.Equal(t, "CLIENT", string(registered.User.Role))

	// Duplicate email rejected
	w = server.SendRequest(t, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{
		Name:     "Dana Again",
		Email:    "dana@example.com",
		Password: "password123",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = server.SendRequest(t, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{
		Email:    "dana@example.com",
		Password: "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var loggedIn dto.AuthResponse
	helpers.DecodeJSON(t, w, &loggedIn)
	assert.NotEmpty(t, loggedIn.AccessToken)

	// Session cookie set for browser clients
	cookies := w.Result().Cookies()
	var foundSession bool
	for _, c := range cookies {
		if c.Name == "bx_session" && c.Value != "" {
			foundSession = true
		}
	}
	assert.True(t, foundSession, "expected bx_session cookie on login")
}

func TestLogin_WrongPassword(t *testing.T) {
	server := helpers.GetTestServer(t)
	server.ClearTables(t)

	server.CreateUser(t, "Dana", "dana@example.com", "CLIENT")

	w := server.SendRequest(t, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{
		Email:    "dana@example.com",
		Password: "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshRotation(t *testing.T) {
	server := helpers.GetTestServer(t)
	server.ClearTables(t)

	w := server.SendRequest(t, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var registered dto.AuthResponse
	helpers.DecodeJSON(t, w, &registered)

	w = server.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", dto.RefreshRequest{
		RefreshToken: registered.RefreshToken,
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var refreshed dto.AuthResponse
	helpers.DecodeJSON(t, w, &refreshed)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// A rotated refresh token is single-use.
	w = server.SendRequest(t, http.MethodPost, "/api/v1/auth/refresh", dto.RefreshRequest{
		RefreshToken: registered.RefreshToken,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe_RequiresAuth(t *testing.T) {
	server := helpers.GetTestServer(t)
	server.ClearTables(t)

	w := server.SendRequest(t, http.MethodGet, "/api/v1/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	_, token := server.CreateUser(t, "Dana", "dana@example.com", "CLIENT")
	w = server.SendRequest(t, http.MethodGet, "/api/v1/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var me dto.UserResponse
	helpers.DecodeJSON(t, w, &me)
	assert.Equal(t, "dana@example.com", me.Email)
}
