package middleware

import (
	"context"

	"github.com/aidar/remote-work-hub/internal/domain"
)

// ContextKey это кастомный тип для ключей контекста
type ContextKey string

// PrincipalKey ключ контекста для аутентифицированного пользователя
const PrincipalKey ContextKey = "principal"

// WithPrincipal возвращает контекст с прикрепленным пользователем
func WithPrincipal(ctx context.Context, principal *domain.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, principal)
}

// PrincipalFromContext извлекает пользователя из контекста
func PrincipalFromContext(ctx context.Context) (*domain.Principal, bool) {
	principal, ok := ctx.Value(PrincipalKey).(*domain.Principal)
	if !ok || principal == nil || principal.User == nil {
		return nil, false
	}
	return principal, true
}
