package util

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-123", "test-secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-123", "test-secret")
	require.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWT_Garbage(t *testing.T) {
	_, err := ParseJWT("not-a-token", "test-secret")
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", ExtractToken(r))
}

func TestExtractToken_MissingOrMalformed(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.Empty(t, ExtractToken(r))

	r.Header.Set("Authorization", "Basic abc123")
	assert.Empty(t, ExtractToken(r))

	r.Header.Set("Authorization", "Bearer")
	assert.Empty(t, ExtractToken(r))
}
