package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aidar/remote-work-hub/internal/domain"
	"github.com/aidar/remote-work-hub/internal/repository/mocks"
)

func TestUserService_UpdateProfile_TrimsNames(t *testing.T) {
	users := &mocks.UserRepository{}
	svc := NewUserService(users)

	want := domain.ProfileUpdate{FirstName: "Alice", LastName: "Liddell"}
	users.On("UpdateProfile", mock.Anything, "u1", want).
		Return(&domain.User{ID: "u1", FirstName: "Alice", LastName: "Liddell"}, nil)

	got, err := svc.UpdateProfile(context.Background(), "u1", domain.ProfileUpdate{FirstName: " Alice ", LastName: "Liddell\n"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.FirstName)
	users.AssertExpectations(t)
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("missing user", func(t *testing.T) {
		users := &mocks.UserRepository{}
		users.On("Delete", mock.Anything, "ghost").Return(domain.ErrUserNotFound)

		err := NewUserService(users).Delete(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	})

	t.Run("success", func(t *testing.T) {
		users := &mocks.UserRepository{}
		users.On("Delete", mock.Anything, "u1").Return(nil)

		require.NoError(t, NewUserService(users).Delete(ctx, "u1"))
		users.AssertExpectations(t)
	})
}
