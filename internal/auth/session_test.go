package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken("secret", userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := VerifyToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", uuid.New())
	require.NoError(t, err)

	_, err = VerifyToken("other-secret", token)
	assert.Error(t, err)
}

func TestVerifyTokenGarbage(t *testing.T) {
	_, err := VerifyToken("secret", "not-a-token")
	assert.Error(t, err)
}
