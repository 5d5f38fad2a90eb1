package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/aidar/remote-work-hub/internal/domain"
)

// CodeBadRequest код ответа для ошибок, не имеющих доменного вида
const CodeBadRequest = "BAD_REQUEST"

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Message: message,
		Code:    code,
	})
}

// HandleError преобразует доменные ошибки в HTTP ответы по их виду.
// Ошибки без доменного вида логируются и отдаются как 400 без деталей
func HandleError(w http.ResponseWriter, r *http.Request, log *zap.SugaredLogger, err error) {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		log.Errorw("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		RespondWithError(w, r, http.StatusBadRequest, CodeBadRequest, "request could not be processed")
		return
	}

	RespondWithError(w, r, StatusForKind(domainErr.Kind), string(domainErr.Kind), domainErr.Message)
}

// StatusForKind возвращает HTTP статус для вида доменной ошибки
func StatusForKind(kind domain.Kind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalidArgument:
		return http.StatusBadRequest
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindUnauthenticated, domain.KindInvalid, domain.KindExpired:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindPreconditionFailed:
		return http.StatusPreconditionFailed
	default:
		return http.StatusBadRequest
	}
}
