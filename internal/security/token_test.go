package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carsharing-backend/internal/domain"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestTokenManager(t *testing.T) {
	user := &domain.User{ID: 5, Email: "ann@example.com", Role: domain.RoleManager}

	t.Run("Round trip", func(t *testing.T) {
		m := NewTokenManager(secret, time.Hour)
		token, err := m.GenerateAccessToken(user)
		require.NoError(t, err)

		claims, err := m.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "ann@example.com", claims.Email())
		assert.Equal(t, int64(5), claims.UserID)
		assert.Equal(t, domain.RoleManager, claims.Role)
	})

	t.Run("Expired", func(t *testing.T) {
		m := NewTokenManager(secret, time.Minute).(*tokenManager)
		m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := m.GenerateAccessToken(user)
		require.NoError(t, err)

		_, err = NewTokenManager(secret, time.Minute).ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		token, err := NewTokenManager(secret, time.Hour).GenerateAccessToken(user)
		require.NoError(t, err)

		_, err = NewTokenManager("ffffffffffffffffffffffffffffffff", time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := NewTokenManager(secret, time.Hour).ValidateToken("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
