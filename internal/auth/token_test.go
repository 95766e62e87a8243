package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	Init("test-secret", 60)

	token, err := GenerateToken("user-123", "ADMIN")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	Init("secret-a", 60)
	token, err := GenerateToken("user-123", "CLIENT")
	assert.NoError(t, err)

	Init("secret-b", 60)
	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	Init("test-secret", 60)
	_, err := ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("password123")
	assert.NoError(t, err)
	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
