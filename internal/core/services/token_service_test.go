package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
	"github.com/thirtydaygen/challenge-engine/internal/core/services"
)

func TestTokenService_RoundTrip(t *testing.T) {
	user := &domain.User{ID: "user-1", Email: "jamie@example.com"}

	repo := new(MockUserRepo)
	repo.On("GetByID", mock.Anything, "user-1").Return(user, nil)

	svc := services.NewTokenService("test-secret", "challenge-engine", time.Hour, repo)

	token, err := svc.GenerateToken("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestTokenService_Validate(t *testing.T) {
	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		repo := new(MockUserRepo)
		other := services.NewTokenService("other-secret", "challenge-engine", time.Hour, repo)
		svc := services.NewTokenService("test-secret", "challenge-engine", time.Hour, repo)

		token, err := other.GenerateToken("user-1")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects a token from a different issuer", func(t *testing.T) {
		repo := new(MockUserRepo)
		other := services.NewTokenService("test-secret", "someone-else", time.Hour, repo)
		svc := services.NewTokenService("test-secret", "challenge-engine", time.Hour, repo)

		token, err := other.GenerateToken("user-1")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorContains(t, err, "issuer")
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := services.NewTokenService("test-secret", "challenge-engine", -time.Minute, repo)

		token, err := svc.GenerateToken("user-1")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("rejects a token for a deleted user", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", mock.Anything, "user-1").Return(nil, domain.ErrUserNotFound)

		svc := services.NewTokenService("test-secret", "challenge-engine", time.Hour, repo)

		token, err := svc.GenerateToken("user-1")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})
}
