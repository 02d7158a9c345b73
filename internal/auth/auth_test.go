package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := VerifyPassword("hunter2", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHashesAreSalted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	_, err := VerifyPassword("x", "not-a-hash")
	assert.ErrorIs(t, err, ErrInvalidHash)
}

func TestTokenRoundTrip(t *testing.T) {
	require.NoError(t, Init())

	token, err := CreateToken("user-123")
	require.NoError(t, err)

	sub, err := AuthenticateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)
}

func TestTokenFromAnotherKeyRejected(t *testing.T) {
	require.NoError(t, Init())
	token, err := CreateToken("user-123")
	require.NoError(t, err)

	// Re-keying the process invalidates previously issued tokens.
	require.NoError(t, Init())
	_, err = AuthenticateToken(token)
	assert.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	require.NoError(t, Init())
	token, err := CreateToken("user-123")
	require.NoError(t, err)

	_, err = AuthenticateToken(token + "x")
	assert.Error(t, err)
	_, err = AuthenticateToken("garbage")
	assert.Error(t, err)
}
