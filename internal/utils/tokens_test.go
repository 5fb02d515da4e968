package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	tok, exp, err := NewAccessToken(secret, 42, 20, 15*time.Minute)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := ParseAccessToken(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, 20, claims.RoleID)
}

func TestParseAccessTokenRejects(t *testing.T) {
	secret := []byte("test-secret")

	tok, _, err := NewAccessToken([]byte("other"), 1, 10, time.Minute)
	require.NoError(t, err)
	_, err = ParseAccessToken(secret, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, _, err := NewAccessToken(secret, 1, 10, -time.Hour)
	require.NoError(t, err)
	_, err = ParseAccessToken(secret, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: 1}).SignedString(secret)
	require.NoError(t, err)
	_, err = ParseAccessToken(secret, noExp)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseAccessToken(secret, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewRefreshToken(t *testing.T) {
	a, err := NewRefreshToken(0)
	require.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := NewRefreshToken(16)
	require.NoError(t, err)
	assert.Len(t, b, 32)
	assert.NotEqual(t, a, b)
}
