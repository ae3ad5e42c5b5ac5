package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oniks98/learn-lingo-sub000/internal/models"
)

func newTestUserService() (UserService, *fakeUserRepo, *fakeBookingRepo, *fakeFavoriteRepo, *fakeAuthDeleter) {
	users := newFakeUserRepo()
	bookings := newFakeBookingRepo()
	favorites := newFakeFavoriteRepo()
	deleter := &fakeAuthDeleter{}
	svc := NewUserService(users, bookings, favorites, deleter, zap.NewNop())
	return svc, users, bookings, favorites, deleter
}

func TestUserServiceSync(t *testing.T) {
	ctx := context.Background()

	t.Run("first sync creates the record", func(t *testing.T) {
		svc, users, _, _, _ := newTestUserService()

		user, err := svc.Sync(ctx, TokenClaims{
			UID:           "u1",
			Email:         "alex@example.com",
			Name:          "Alex",
			Provider:      models.ProviderGoogle,
			EmailVerified: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "Alex", user.Username)
		assert.Equal(t, models.ProviderGoogle, user.Provider)
		assert.True(t, user.EmailVerified)
		assert.False(t, user.CreatedAt.IsZero())

		stored, err := users.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, user.Email, stored.Email)
	})

	t.Run("missing name falls back to email, missing provider to password", func(t *testing.T) {
		svc, _, _, _, _ := newTestUserService()

		user, err := svc.Sync(ctx, TokenClaims{UID: "u1", Email: "alex@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "alex@example.com", user.Username)
		assert.Equal(t, models.ProviderPassword, user.Provider)
	})

	t.Run("re-sync refreshes verification state", func(t *testing.T) {
		svc, users, _, _, _ := newTestUserService()

		_, err := svc.Sync(ctx, TokenClaims{UID: "u1", Email: "alex@example.com"})
		require.NoError(t, err)

		user, err := svc.Sync(ctx, TokenClaims{UID: "u1", Email: "alex@example.com", EmailVerified: true})
		require.NoError(t, err)
		assert.True(t, user.EmailVerified)

		stored, err := users.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, stored.EmailVerified)
	})

	t.Run("re-sync keeps the stored username", func(t *testing.T) {
		svc, _, _, _, _ := newTestUserService()

		_, err := svc.Sync(ctx, TokenClaims{UID: "u1", Email: "alex@example.com", Name: "Alex"})
		require.NoError(t, err)
		_, err = svc.UpdateUsername(ctx, "u1", "Oleksandr")
		require.NoError(t, err)

		user, err := svc.Sync(ctx, TokenClaims{UID: "u1", Email: "alex@example.com", Name: "Alex"})
		require.NoError(t, err)
		assert.Equal(t, "Oleksandr", user.Username)
	})

	t.Run("empty uid is rejected", func(t *testing.T) {
		svc, _, _, _, _ := newTestUserService()
		_, err := svc.Sync(ctx, TokenClaims{Email: "alex@example.com"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUserServiceUpdateUsername(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := newTestUserService()

	_, err := svc.Sync(ctx, TokenClaims{UID: "u1", Email: "alex@example.com"})
	require.NoError(t, err)

	user, err := svc.UpdateUsername(ctx, "u1", "Oleksandr")
	require.NoError(t, err)
	assert.Equal(t, "Oleksandr", user.Username)

	_, err = svc.UpdateUsername(ctx, "u1", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateUsername(ctx, "ghost", "Any")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserServiceDeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades over bookings, favorites, record and auth account", func(t *testing.T) {
		svc, users, bookings, favorites, deleter := newTestUserService()

		_, err := svc.Sync(ctx, TokenClaims{UID: "u1", Email: "alex@example.com"})
		require.NoError(t, err)
		require.NoError(t, bookings.Create(ctx, &models.Booking{ID: "b1", UserID: "u1", TeacherID: "t1"}))
		require.NoError(t, favorites.Add(ctx, "u1", "t1"))

		require.NoError(t, svc.DeleteAccount(ctx, "u1"))

		assert.Equal(t, 0, bookings.count("u1"))
		ids, _ := favorites.List(ctx, "u1")
		assert.Empty(t, ids)
		_, err = users.GetByID(ctx, "u1")
		assert.Error(t, err)
		assert.Equal(t, []string{"u1"}, deleter.deleted)
	})

	t.Run("unknown account", func(t *testing.T) {
		svc, _, _, _, _ := newTestUserService()
		err := svc.DeleteAccount(ctx, "ghost")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("auth deletion failure surfaces after data is gone", func(t *testing.T) {
		svc, users, _, _, deleter := newTestUserService()
		deleter.err = errNotRecoverable

		_, err := svc.Sync(ctx, TokenClaims{UID: "u1", Email: "alex@example.com"})
		require.NoError(t, err)

		err = svc.DeleteAccount(ctx, "u1")
		require.Error(t, err)
		_, getErr := users.GetByID(ctx, "u1")
		assert.Error(t, getErr, "data removal happens before the auth call")
	})
}
