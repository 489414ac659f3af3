package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const secret = "a-test-secret-of-enough-length"

func TestTokens_RoundTrip(t *testing.T) {
	req := require.New(t)
	tokens, err := NewTokens(secret, time.Hour, nil)
	req.NoError(err)

	token, err := tokens.GenerateToken("owner", []string{RoleAdmin})
	req.NoError(err)

	claims, err := tokens.ValidateToken(token)
	req.NoError(err)
	req.Equal("owner", claims.Subject)
	req.True(claims.HasRole(RoleAdmin))
	req.False(claims.HasRole("user"))
}

func TestTokens_Rejections(t *testing.T) {
	req := require.New(t)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	tokens, err := NewTokens(secret, time.Hour, clock)
	req.NoError(err)
	token, err := tokens.GenerateToken("owner", []string{RoleAdmin})
	req.NoError(err)

	t.Run("expired", func(t *testing.T) {
		later, err := NewTokens(secret, time.Hour, func() time.Time { return now.Add(2 * time.Hour) })
		require.NoError(t, err)
		_, err = later.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := NewTokens("another-secret-of-enough-length", time.Hour, clock)
		require.NoError(t, err)
		_, err = other.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tokens.ValidateToken("invalid-token-string")
		require.Error(t, err)
	})
}

func TestNewTokens_ShortSecret(t *testing.T) {
	_, err := NewTokens("short", time.Hour, nil)
	require.Error(t, err)
}
