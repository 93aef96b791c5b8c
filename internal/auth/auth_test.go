package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.NoError(t, CheckPasswordHash(hash, "s3cret-password"))
	assert.Error(t, CheckPasswordHash(hash, "wrong-password"))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := CreateAccessToken(42, "secret", time.Hour)
	require.NoError(t, err)

	userID, err := ParseAccessToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := CreateAccessToken(42, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseAccessToken(token, "secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAccessTokenMalformed(t *testing.T) {
	_, err := ParseAccessToken("definitely-not-a-jwt", "secret")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := CreateAccessToken(42, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseAccessToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
