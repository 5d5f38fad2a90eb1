package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aidar/remote-work-hub/internal/domain"
	"github.com/aidar/remote-work-hub/internal/repository/mocks"
	"github.com/aidar/remote-work-hub/internal/service"
)

const testSecret = "middleware-test-secret-32-bytes-long!!"

var publicPaths = []string{"/api/v1/auth/"}

// captureHandler запоминает пользователя, дошедшего до обработчика
type captureHandler struct {
	called    bool
	principal *domain.Principal
}

func (h *captureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.principal, _ = PrincipalFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func issueToken(t *testing.T, codec *service.TokenCodec, user *domain.User) string {
	t.Helper()
	token, err := codec.Issue(user)
	require.NoError(t, err)
	return token
}

func TestSessionResolver(t *testing.T) {
	codec := service.NewTokenCodec(testSecret)
	alice := &domain.User{ID: "u1", Username: "alice", Role: domain.RoleManager, IsActive: true}

	t.Run("attaches principal for valid token", func(t *testing.T) {
		users := &mocks.UserRepository{}
		users.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)
		next := &captureHandler{}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/pending/count", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, codec, alice))
		SessionResolver(codec, users, publicPaths, zap.NewNop().Sugar())(next).ServeHTTP(httptest.NewRecorder(), req)

		require.True(t, next.called)
		require.NotNil(t, next.principal)
		assert.Equal(t, "u1", next.principal.User.ID)
		assert.Equal(t, []string{"ROLE_MANAGER"}, next.principal.Authorities)
		users.AssertExpectations(t)
	})

	t.Run("missing header continues unauthenticated", func(t *testing.T) {
		users := &mocks.UserRepository{}
		next := &captureHandler{}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/pending/count", nil)
		SessionResolver(codec, users, publicPaths, zap.NewNop().Sugar())(next).ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, next.called)
		assert.Nil(t, next.principal)
		users.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
	})

	t.Run("invalid token is swallowed", func(t *testing.T) {
		users := &mocks.UserRepository{}
		next := &captureHandler{}
		expired := service.NewTokenCodec(testSecret, service.WithClock(func() time.Time {
			return time.Now().Add(-48 * time.Hour)
		}))

		for _, token := range []string{"garbage", issueToken(t, expired, alice)} {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			SessionResolver(codec, users, publicPaths, zap.NewNop().Sugar())(next).ServeHTTP(httptest.NewRecorder(), req)

			assert.True(t, next.called)
			assert.Nil(t, next.principal)
		}
		users.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
	})

	t.Run("unknown user is swallowed", func(t *testing.T) {
		users := &mocks.UserRepository{}
		users.On("GetByUsername", mock.Anything, "alice").Return(nil, domain.ErrUserNotFound)
		next := &captureHandler{}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, codec, alice))
		SessionResolver(codec, users, publicPaths, zap.NewNop().Sugar())(next).ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, next.called)
		assert.Nil(t, next.principal)
	})

	t.Run("inactive user is not attached", func(t *testing.T) {
		disabled := *alice
		disabled.IsActive = false
		users := &mocks.UserRepository{}
		users.On("GetByUsername", mock.Anything, "alice").Return(&disabled, nil)
		next := &captureHandler{}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, codec, alice))
		SessionResolver(codec, users, publicPaths, zap.NewNop().Sugar())(next).ServeHTTP(httptest.NewRecorder(), req)

		assert.Nil(t, next.principal)
	})

	t.Run("public paths and preflight skip verification", func(t *testing.T) {
		users := &mocks.UserRepository{}
		next := &captureHandler{}
		resolver := SessionResolver(codec, users, publicPaths, zap.NewNop().Sugar())(next)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, codec, alice))
		resolver.ServeHTTP(httptest.NewRecorder(), req)
		assert.Nil(t, next.principal)

		req = httptest.NewRequest(http.MethodOptions, "/api/v1/teams", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, codec, alice))
		resolver.ServeHTTP(httptest.NewRecorder(), req)
		assert.Nil(t, next.principal)

		users.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
	})

	t.Run("existing principal is not overwritten", func(t *testing.T) {
		users := &mocks.UserRepository{}
		next := &captureHandler{}
		existing := domain.NewPrincipal(&domain.User{ID: "admin", Role: domain.RoleAdmin})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, codec, alice))
		req = req.WithContext(WithPrincipal(context.Background(), existing))
		SessionResolver(codec, users, publicPaths, zap.NewNop().Sugar())(next).ServeHTTP(httptest.NewRecorder(), req)

		assert.Same(t, existing, next.principal)
		users.AssertNotCalled(t, "GetByUsername", mock.Anything, mock.Anything)
	})
}

func TestRequireIdentity(t *testing.T) {
	next := &captureHandler{}
	rec := httptest.NewRecorder()

	RequireIdentity(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil))

	assert.False(t, next.called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil)
	req = req.WithContext(WithPrincipal(req.Context(), domain.NewPrincipal(&domain.User{ID: "u1", Role: domain.RoleUser})))
	RequireIdentity(next).ServeHTTP(rec, req)

	assert.True(t, next.called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthorize(t *testing.T) {
	policy := service.DefaultPolicy()
	gate := func(role domain.Role) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/users/u2", nil)
		req = req.WithContext(WithPrincipal(req.Context(), domain.NewPrincipal(&domain.User{ID: "u1", Role: role})))
		Authorize(policy, service.ActionDeleteUser)(&captureHandler{}).ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, gate(domain.RoleAdmin).Code)

	rec := gate(domain.RoleTeamLead)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"insufficient privileges","code":"FORBIDDEN"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Authorize(policy, service.ActionDeleteUser)(&captureHandler{}).
		ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/admin/users/u2", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthEndpointHint(t *testing.T) {
	rec := httptest.NewRecorder()
	AuthEndpointHint(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/login", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"This is an auth endpoint. Use POST."}`, rec.Body.String())
}
