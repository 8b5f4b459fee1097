package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT() *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 240*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestJWT()

	token, exp, err := m.GenerateAccessToken("user-1", "a@b.dev", "alice", "Alice A")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.dev", claims.Email)
	assert.Equal(t, "alice", claims.UserName)
	assert.Equal(t, "Alice A", claims.FullName)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newTestJWT()

	token, _, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	claims, err := m.ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestAccessAndRefreshSecretsAreDistinct(t *testing.T) {
	m := newTestJWT()

	access, _, err := m.GenerateAccessToken("user-1", "a@b.dev", "alice", "Alice A")
	require.NoError(t, err)
	refresh, _, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = m.ParseRefreshToken(access)
	assert.Error(t, err, "access token must not verify as refresh token")
	_, err = m.ParseAccessToken(refresh)
	assert.Error(t, err, "refresh token must not verify as access token")
}

func TestParseRejectsForeignSecret(t *testing.T) {
	m := newTestJWT()
	other := NewJWTManager("other-access", "other-refresh", 15*time.Minute, 240*time.Hour)

	token, _, err := other.GenerateAccessToken("user-1", "a@b.dev", "alice", "Alice A")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	m := newTestJWT()
	_, err := m.ParseAccessToken("not.a.token")
	assert.Error(t, err)
}
