package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlourenco/rodizio/internal/lib/jwt"
)

func TestGenerateAndParseToken(t *testing.T) {
	maker := jwt.NewMaker("secret", time.Hour)

	token, err := maker.GenerateToken("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.NotNil(t, claims.IssuedAt)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseTokenFailures(t *testing.T) {
	maker := jwt.NewMaker("secret", time.Hour)

	t.Run("malformed token", func(t *testing.T) {
		_, err := maker.ParseToken("garbage")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := jwt.NewMaker("other", time.Hour)
		token, err := other.GenerateToken("admin")
		require.NoError(t, err)

		_, err = maker.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := jwt.NewMaker("secret", -time.Minute)
		token, err := expired.GenerateToken("admin")
		require.NoError(t, err)

		_, err = maker.ParseToken(token)
		assert.Error(t, err)
	})
}
