package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("signing-key")

	token, err := GenerateToken(key, "user-1", "ADMIN", "curl/8.0")
	require.NoError(t, err)

	claims, err := ParseToken(key, token, "curl/8.0")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestParseToken_Rejects(t *testing.T) {
	key := []byte("signing-key")
	token, err := GenerateToken(key, "user-1", "SCHOOL", "curl/8.0")
	require.NoError(t, err)

	_, err = ParseToken([]byte("other-key"), token, "curl/8.0")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken(key, token, "Mozilla/5.0")
	assert.ErrorIs(t, err, ErrUserAgentMismatch)

	_, err = ParseToken(key, "not-a-token", "curl/8.0")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
