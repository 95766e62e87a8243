package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildxpert/internal/auth"
	"buildxpert/internal/models"
)

func newContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestResolveCredential_BearerHeaderWins(t *testing.T) {
	c, _ := newContext(t)
	c.Request.Header.Set("Authorization", "Bearer header-token")
	c.Request.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookie-token"})
	c.Request.AddCookie(&http.Cookie{Name: LegacyCookieName, Value: "legacy-token"})

	assert.Equal(t, "header-token", ResolveCredential(c))
}

func TestResolveCredential_SessionCookieBeforeLegacy(t *testing.T) {
	c, _ := newContext(t)
	c.Request.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "cookie-token"})
	c.Request.AddCookie(&http.Cookie{Name: LegacyCookieName, Value: "legacy-token"})

	assert.Equal(t, "cookie-token", ResolveCredential(c))
}

func TestResolveCredential_LegacyCookieFallback(t *testing.T) {
	c, _ := newContext(t)
	c.Request.AddCookie(&http.Cookie{Name: LegacyCookieName, Value: "legacy-token"})

	assert.Equal(t, "legacy-token", ResolveCredential(c))
}

func TestResolveCredential_Empty(t *testing.T) {
	c, _ := newContext(t)
	assert.Equal(t, "", ResolveCredential(c))

	c2, _ := newContext(t)
	c2.Request.Header.Set("Authorization", "Bearer ")
	assert.Equal(t, "", ResolveCredential(c2))
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	auth.Init("test-secret", 60)
	token, err := auth.GenerateToken("user-1", "CLIENT")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles_Forbidden(t *testing.T) {
	auth.Init("test-secret", 60)
	token, err := auth.GenerateToken("user-1", "CLIENT")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin", AuthMiddleware(), RequireRoles(models.UserRoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
