package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/aidar/remote-work-hub/internal/domain"
	"github.com/aidar/remote-work-hub/internal/service"
)

const bearerPrefix = "Bearer "

// TokenVerifier проверяет токен сессии
type TokenVerifier interface {
	Verify(token string) (*service.SessionClaims, error)
}

// UserLoader загружает пользователя по имени
type UserLoader interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// SessionResolver создает middleware, которое по заголовку Authorization находит
// пользователя и прикрепляет его к контексту запроса. Ошибки не прерывают запрос:
// он продолжается неаутентифицированным, а отказ выносит RequireIdentity или Authorize
func SessionResolver(tokens TokenVerifier, users UserLoader, publicPaths []string, log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Preflight и публичные пути не требуют токена
			if r.Method == http.MethodOptions || isPublicPath(r.URL.Path, publicPaths) {
				next.ServeHTTP(w, r)
				return
			}

			// Уже аутентифицированный контекст не перезаписываем
			if _, ok := PrincipalFromContext(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			// Получаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				next.ServeHTTP(w, r)
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))

			// Валидируем токен
			claims, err := tokens.Verify(token)
			if err != nil {
				log.Debugw("session token rejected", "path", r.URL.Path, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByUsername(r.Context(), claims.Username())
			if err != nil {
				log.Warnw("cannot load session user", "username", claims.Username(), "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if !user.IsActive {
				log.Debugw("session user is inactive", "user_id", user.ID)
				next.ServeHTTP(w, r)
				return
			}

			// Добавляем пользователя в контекст
			ctx := WithPrincipal(r.Context(), domain.NewPrincipal(user))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireIdentity отклоняет запросы без аутентифицированного пользователя
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFromContext(r.Context()); !ok {
			unauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Authorize создает middleware, проверяющее право пользователя на действие
func Authorize(policy *service.Policy, action service.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				unauthorized(w, r)
				return
			}

			if err := policy.Authorize(principal, action); err != nil {
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, map[string]string{
					"message": domain.ErrForbidden.Message,
					"code":    string(domain.KindForbidden),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AuthEndpointHint отвечает на неверный метод у эндпоинтов логина и регистрации
func AuthEndpointHint(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, map[string]string{"message": "This is an auth endpoint. Use POST."})
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, map[string]string{"error": "Unauthorized"})
}

func isPublicPath(path string, publicPaths []string) bool {
	for _, prefix := range publicPaths {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
