package utils

import (
	"testing"

	"homeserve/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("user-123", "user@example.com", "device-abc")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, device, err := ExtractIDsFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)
	assert.Equal(t, "device-abc", device)
}

func TestExtractRejectsTamperedToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("user-123", "user@example.com", "device-abc")
	require.NoError(t, err)

	_, _, err = ExtractIDsFromToken(token + "x")
	assert.Error(t, err)

	_, _, err = ExtractIDsFromToken("not-a-token")
	assert.Error(t, err)
}

func TestExtractRejectsWrongSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "secret-one"
	token, err := GenerateToken("user-123", "user@example.com", "device-abc")
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "secret-two"
	_, _, err = ExtractIDsFromToken(token)
	assert.Error(t, err)
}

func TestHashTokenDeterministic(t *testing.T) {
	h1 := HashToken("some-token")
	h2 := HashToken("some-token")
	h3 := HashToken("other-token")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	// SHA-256 hex digest.
	assert.Len(t, h1, 64)
}
