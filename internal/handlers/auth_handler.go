package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"buildxpert/internal/dto"
	"buildxpert/internal/middleware"
	"buildxpert/internal/services"
)

type AuthHandler struct {
	*BaseHandler
	auth *services.AuthService
}

func NewAuthHandler(base *BaseHandler, auth *services.AuthService) *AuthHandler {
	return &AuthHandler{BaseHandler: base, auth: auth}
}

// Register godoc
// @Summary Register a new client account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.AuthResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, resp.AccessToken)
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, resp.AccessToken)
	c.JSON(http.StatusOK, resp)
}

// GoogleLogin godoc
// @Summary Log in with a Google ID token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.AuthResponse
// @Router /auth/google [post]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.auth.LoginWithGoogle(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, resp.AccessToken)
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.auth.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, resp.AccessToken)
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Invalidate the caller's refresh tokens and clear the session cookie
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	if err := h.auth.Logout(c.Request.Context(), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.SetCookie(middleware.LegacyCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// Me godoc
// @Summary Return the authenticated user's profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}

	resp, err := h.auth.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	// Browser clients ride on the cookie; API clients use the Bearer
	// header from the response body.
	c.SetCookie(middleware.SessionCookieName, token, 3600*24, "/", "", false, true)
}
