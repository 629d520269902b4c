package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlourenco/rodizio/internal/lib/jwt"
	services "github.com/vlourenco/rodizio/internal/services/auth"
)

func TestLogin(t *testing.T) {
	maker := jwt.NewMaker("test-secret", 24*time.Hour)
	svc, err := services.NewAuthService("admin123", maker)
	require.NoError(t, err)

	t.Run("correct password issues a valid token", func(t *testing.T) {
		token, err := svc.Login("admin123")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, services.AdminRole, claims.Role)
	})

	t.Run("wrong password yields no token", func(t *testing.T) {
		token, err := svc.Login("guess")
		require.ErrorIs(t, err, services.ErrInvalidPassword)
		assert.Empty(t, token)
	})
}

func TestValidateToken(t *testing.T) {
	maker := jwt.NewMaker("test-secret", 24*time.Hour)
	svc, err := services.NewAuthService("admin123", maker)
	require.NoError(t, err)

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expiredMaker := jwt.NewMaker("test-secret", -time.Hour)
		token, err := expiredMaker.GenerateToken(services.AdminRole)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		otherMaker := jwt.NewMaker("other-secret", 24*time.Hour)
		token, err := otherMaker.GenerateToken(services.AdminRole)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})
}
