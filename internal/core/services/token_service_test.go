package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTokenService_GenerateAndValidate(t *testing.T) {
	secret := "super-secret-key-for-testing"
	issuer := "kanso-test"
	user := &domain.User{ID: "user-123-uuid", Username: "kanso01"}
	ctx := context.Background()

	setup := func() (*TokenService, *MockUserRepository) {
		mockRepo := new(MockUserRepository)
		return NewTokenService(secret, issuer, 1*time.Hour, mockRepo), mockRepo
	}

	t.Run("Success: Should generate and validate a token", func(t *testing.T) {
		service, mockRepo := setup()
		mockRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

		tokenString, expiresAt, err := service.GenerateToken(user)
		require.NoError(t, err)
		assert.NotEmpty(t, tokenString)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		extractedID, err := service.ValidateToken(ctx, tokenString)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, extractedID)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should reject valid token if user is deleted", func(t *testing.T) {
		service, mockRepo := setup()
		mockRepo.On("GetByID", mock.Anything, user.ID).Return(nil, errors.New("user not found"))

		tokenString, _, err := service.GenerateToken(user)
		require.NoError(t, err)

		extractedID, err := service.ValidateToken(ctx, tokenString)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "user no longer exists")
		assert.Empty(t, extractedID)
	})

	t.Run("Fail: Should reject expired token", func(t *testing.T) {
		service, mockRepo := setup()
		service.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		tokenString, _, err := service.GenerateToken(user)
		require.NoError(t, err)
		service.now = time.Now

		_, err = service.ValidateToken(ctx, tokenString)

		assert.ErrorIs(t, err, ErrInvalidToken)
		mockRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("Fail: Should reject token from another issuer", func(t *testing.T) {
		other := NewTokenService(secret, "someone-else", time.Hour, new(MockUserRepository))
		tokenString, _, err := other.GenerateToken(user)
		require.NoError(t, err)

		service, _ := setup()
		_, err = service.ValidateToken(ctx, tokenString)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Fail: Should reject a different signing method", func(t *testing.T) {
		service, _ := setup()
		claims := jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secret))
		require.NoError(t, err)

		_, err = service.ValidateToken(ctx, tokenString)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Fail: Should reject garbage", func(t *testing.T) {
		service, _ := setup()

		_, err := service.ValidateToken(ctx, "not.a.token")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
