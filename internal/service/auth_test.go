package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aidar/remote-work-hub/internal/domain"
	"github.com/aidar/remote-work-hub/internal/repository/mocks"
)

type notifierMock struct{ mock.Mock }

func (m *notifierMock) NotifyPasswordReset(ctx context.Context, reset domain.PasswordReset) error {
	return m.Called(ctx, reset).Error(0)
}

type authFixture struct {
	users    *mocks.UserRepository
	notifier *notifierMock
	hasher   *BcryptHasher
	tokens   *TokenCodec
	svc      *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	f := &authFixture{
		users:    &mocks.UserRepository{},
		notifier: &notifierMock{},
		hasher:   NewBcryptHasher(bcrypt.MinCost),
		tokens:   NewTokenCodec(testSecret, WithClock(fixedClock(testNow))),
	}
	f.svc = NewAuthService(f.users, f.hasher, f.tokens, f.notifier, WithClock(fixedClock(testNow)))

	t.Cleanup(func() {
		f.users.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	return f
}

func (f *authFixture) storedUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := f.hasher.Hash(password)
	require.NoError(t, err)
	return &domain.User{
		ID:           "u1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
		Role:         domain.RoleTeamLead,
		IsActive:     true,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	in := RegisterInput{Username: "alice", Email: "alice@example.com", Password: "s3cret-pass"}

	t.Run("success", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
		f.users.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
		f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID != "" &&
				u.Role == domain.RoleUser &&
				u.IsActive &&
				u.PasswordHash != in.Password &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) == nil
		})).Return(nil)

		res, err := f.svc.Register(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "alice", res.Username)
		assert.Equal(t, "USER", res.Role)
		assert.Equal(t, "Registration successful", res.Message)

		claims, err := f.tokens.Verify(res.Token)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Username())
		assert.Equal(t, "ROLE_USER", claims.Authority)
	})

	t.Run("duplicate username", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil)

		_, err := f.svc.Register(ctx, in)
		assert.ErrorIs(t, err, domain.ErrUsernameExists)
		assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
		f.users.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(true, nil)

		_, err := f.svc.Register(ctx, in)
		assert.ErrorIs(t, err, domain.ErrEmailExists)
	})

	t.Run("lost race to concurrent registration", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
		f.users.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
		f.users.On("Create", mock.Anything, mock.Anything).Return(domain.ErrUsernameExists)

		_, err := f.svc.Register(ctx, in)
		assert.ErrorIs(t, err, domain.ErrUsernameExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("GetByUsername", mock.Anything, "alice").Return(f.storedUser(t, "pw-123"), nil)

		res, err := f.svc.Login(ctx, "alice", "pw-123")
		require.NoError(t, err)
		assert.Equal(t, "TEAM_LEAD", res.Role)
		assert.Equal(t, "Login successful", res.Message)

		claims, err := f.tokens.Verify(res.Token)
		require.NoError(t, err)
		assert.Equal(t, "ROLE_TEAM_LEAD", claims.Authority)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("GetByUsername", mock.Anything, "alice").Return(f.storedUser(t, "pw-123"), nil)

		_, err := f.svc.Login(ctx, "alice", "nope")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("repeated failures keep no state", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("GetByUsername", mock.Anything, "alice").Return(f.storedUser(t, "pw-123"), nil).Times(4)

		for i := 0; i < 3; i++ {
			_, err := f.svc.Login(ctx, "alice", "nope")
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "attempt %d", i+1)
			assert.Equal(t, domain.KindUnauthenticated, domain.KindOf(err))
		}

		// Правильный пароль после неудачных попыток принимается
		res, err := f.svc.Login(ctx, "alice", "pw-123")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)

		f.users.AssertNumberOfCalls(t, "GetByUsername", 4)
		f.users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
		f.users.AssertNotCalled(t, "SetPasswordReset", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.users.AssertNotCalled(t, "ResetPassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.notifier.AssertNotCalled(t, "NotifyPasswordReset", mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("GetByUsername", mock.Anything, "bob").Return(nil, domain.ErrUserNotFound)

		_, err := f.svc.Login(ctx, "bob", "pw-123")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.storedUser(t, "pw-123")
		user.IsActive = false
		f.users.On("GetByUsername", mock.Anything, "alice").Return(user, nil)

		_, err := f.svc.Login(ctx, "alice", "pw-123")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthService_InitiatePasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrUserNotFound)

		_, err := f.svc.InitiatePasswordReset(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, domain.ErrEmailNotFound)
	})

	t.Run("stores token and notifies", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.storedUser(t, "pw-123")
		expires := testNow.Add(time.Hour)
		f.users.On("GetByEmail", mock.Anything, "alice@example.com").Return(user, nil)
		f.users.On("SetPasswordReset", mock.Anything, "u1", mock.AnythingOfType("string"), expires).Return(nil)
		f.notifier.On("NotifyPasswordReset", mock.Anything, mock.MatchedBy(func(r domain.PasswordReset) bool {
			return r.UserID == "u1" && r.Token != "" && r.ExpiresAt.Equal(expires)
		})).Return(nil)

		reset, err := f.svc.InitiatePasswordReset(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, reset.Token)
		assert.Equal(t, expires, reset.ExpiresAt)
	})

	t.Run("delivery failure keeps token", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("GetByEmail", mock.Anything, "alice@example.com").Return(f.storedUser(t, "pw-123"), nil)
		f.users.On("SetPasswordReset", mock.Anything, "u1", mock.Anything, mock.Anything).Return(nil)
		f.notifier.On("NotifyPasswordReset", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		_, err := f.svc.InitiatePasswordReset(ctx, "alice@example.com")
		assert.NoError(t, err)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	ctx := context.Background()

	withToken := func(f *authFixture, t *testing.T, expiresAt time.Time) *domain.User {
		user := f.storedUser(t, "old-pass")
		token := "reset-token"
		user.PasswordResetToken = &token
		user.PasswordResetExpiresAt = &expiresAt
		return user
	}

	t.Run("empty token", func(t *testing.T) {
		f := newAuthFixture(t)

		err := f.svc.ResetPassword(ctx, "", "new-pass")
		assert.ErrorIs(t, err, domain.ErrResetTokenInvalid)
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("GetByResetToken", mock.Anything, "bogus").Return(nil, domain.ErrUserNotFound)

		err := f.svc.ResetPassword(ctx, "bogus", "new-pass")
		assert.ErrorIs(t, err, domain.ErrResetTokenInvalid)
		assert.Equal(t, domain.KindInvalid, domain.KindOf(err))
	})

	t.Run("expired token", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("GetByResetToken", mock.Anything, "reset-token").
			Return(withToken(f, t, testNow.Add(-time.Minute)), nil)

		err := f.svc.ResetPassword(ctx, "reset-token", "new-pass")
		assert.ErrorIs(t, err, domain.ErrResetTokenExpired)
		assert.Equal(t, domain.KindExpired, domain.KindOf(err))
	})

	t.Run("success clears token", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("GetByResetToken", mock.Anything, "reset-token").
			Return(withToken(f, t, testNow.Add(time.Minute)), nil)
		f.users.On("ResetPassword", mock.Anything, "u1", "reset-token", mock.MatchedBy(func(hash string) bool {
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte("new-pass")) == nil
		})).Return(nil)

		err := f.svc.ResetPassword(ctx, "reset-token", "new-pass")
		assert.NoError(t, err)
	})

	t.Run("token consumed concurrently", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("GetByResetToken", mock.Anything, "reset-token").
			Return(withToken(f, t, testNow.Add(time.Minute)), nil)
		f.users.On("ResetPassword", mock.Anything, "u1", "reset-token", mock.Anything).
			Return(domain.ErrResetTokenInvalid)

		err := f.svc.ResetPassword(ctx, "reset-token", "new-pass")
		assert.ErrorIs(t, err, domain.ErrResetTokenInvalid)
	})
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("pw")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", hash)
	assert.NoError(t, h.Compare(hash, "pw"))
	assert.ErrorIs(t, h.Compare(hash, "other"), domain.ErrInvalidCredentials)

	_, err = h.Hash("")
	assert.ErrorIs(t, err, domain.ErrEmptyPassword)
}
