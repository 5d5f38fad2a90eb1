package handler

import (
	"net/http"

	"github.com/go-chi/render"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/aidar/remote-work-hub/internal/domain"
	"github.com/aidar/remote-work-hub/internal/middleware"
)

// MessageResponse представляет ответ с текстовым сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

// CountResponse представляет ответ со счетчиком
type CountResponse struct {
	Count int64 `json:"count"`
}

// RespondWithJSON отправляет JSON ответ с указанным статус кодом
func RespondWithJSON(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) {
	render.Status(r, statusCode)
	render.JSON(w, r, data)
}

// decodeRequest читает JSON тело запроса и валидирует его
func decodeRequest(r *http.Request, dst validation.Validatable) error {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		return domain.NewError(domain.KindInvalidArgument, "invalid request body")
	}

	if err := dst.Validate(); err != nil {
		return domain.NewError(domain.KindInvalidArgument, err.Error())
	}

	return nil
}

// principalFrom возвращает пользователя запроса или ErrUnauthenticated
func principalFrom(r *http.Request) (*domain.Principal, error) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return principal, nil
}
