package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Hour, 24*time.Hour)

	token, exp, err := m.GenerateAccessToken("u1", "s1")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "s1", claims.SessionID)
}

func TestAccessAndRefreshSecretsAreIndependent(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Hour, 24*time.Hour)

	access, _, err := m.GenerateAccessToken("u1", "s1")
	require.NoError(t, err)
	refresh, _, err := m.GenerateRefreshToken("u1", "s1")
	require.NoError(t, err)

	_, err = m.ParseRefreshToken(access)
	assert.Error(t, err)
	_, err = m.ParseAccessToken(refresh)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewJWTManager("access", "refresh", -time.Minute, -time.Minute)

	token, _, err := m.GenerateAccessToken("u1", "s1")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Hour, time.Hour)
	other := NewJWTManager("evil", "evil", time.Hour, time.Hour)

	token, _, err := other.GenerateAccessToken("u1", "s1")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secreta123")
	require.NoError(t, err)
	assert.NotEqual(t, "secreta123", hash)
	assert.True(t, CompareHashAndPassword(hash, "secreta123"))
	assert.False(t, CompareHashAndPassword(hash, "secreta124"))
}
