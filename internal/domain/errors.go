package domain

import "errors"

// Kind классифицирует доменную ошибку; по нему транспорт выбирает HTTP статус
type Kind string

// Виды ошибок ядра
const (
	KindInternal           Kind = "INTERNAL"
	KindNotFound           Kind = "NOT_FOUND"
	KindInvalidArgument    Kind = "INVALID_ARGUMENT"
	KindConflict           Kind = "CONFLICT"
	KindUnauthenticated    Kind = "UNAUTHENTICATED"
	KindForbidden          Kind = "FORBIDDEN"
	KindPreconditionFailed Kind = "PRECONDITION_FAILED"
	KindExpired            Kind = "EXPIRED"
	KindInvalid            Kind = "INVALID"
)

// Error это доменная ошибка с видом и человекочитаемым сообщением
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError создает доменную ошибку указанного вида
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf возвращает вид ошибки; для чужих ошибок возвращает KindInternal
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInternal
}

// IsKind проверяет, относится ли ошибка к указанному виду
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Ресурс не найден
var (
	ErrUserNotFound  = NewError(KindNotFound, "user not found")
	ErrTeamNotFound  = NewError(KindNotFound, "team not found")
	ErrTaskNotFound  = NewError(KindNotFound, "task not found")
	ErrEmailNotFound = NewError(KindNotFound, "email not found")
)

// Некорректный ввод
var (
	ErrEmptyTaskTitle = NewError(KindInvalidArgument, "task title cannot be empty")
	ErrEmptyTeamName  = NewError(KindInvalidArgument, "team name cannot be empty")
	ErrEmptyPassword  = NewError(KindInvalidArgument, "password cannot be empty")
	ErrInvalidRole    = NewError(KindInvalidArgument, "unknown role")
)

// Нарушение уникальности и гонки записи
var (
	ErrUsernameExists = NewError(KindConflict, "username already exists")
	ErrEmailExists    = NewError(KindConflict, "email already exists")
	ErrTeamExists     = NewError(KindConflict, "team with this name already exists")
	ErrAlreadyMember  = NewError(KindConflict, "user is already a member of this team")
	ErrTaskConflict   = NewError(KindConflict, "task was modified concurrently")
)

// Аутентификация и авторизация
var (
	ErrUnauthenticated    = NewError(KindUnauthenticated, "authentication required")
	ErrInvalidCredentials = NewError(KindUnauthenticated, "invalid username or password")
	ErrTokenMalformed     = NewError(KindUnauthenticated, "token is malformed")
	ErrTokenExpired       = NewError(KindUnauthenticated, "token is expired")
	ErrTokenSignature     = NewError(KindUnauthenticated, "token signature mismatch")
	ErrForbidden          = NewError(KindForbidden, "insufficient privileges")
	ErrCertifyForbidden   = NewError(KindForbidden, "user does not have permission to certify tasks")
)

// Токен сброса пароля
var (
	ErrResetTokenInvalid = NewError(KindInvalid, "invalid or expired token")
	ErrResetTokenExpired = NewError(KindExpired, "token has expired")
)

// Недопустимый переход жизненного цикла задачи
var (
	ErrTaskNotDone          = NewError(KindPreconditionFailed, "task must be marked as DONE before certification")
	ErrTaskAlreadyCertified = NewError(KindPreconditionFailed, "task is already certified")
)
