package handler

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"go.uber.org/zap"

	"github.com/aidar/remote-work-hub/internal/service"
)

// AuthHandler обрабатывает эндпоинты аутентификации
type AuthHandler struct {
	authService *service.AuthService
	log         *zap.SugaredLogger
}

// NewAuthHandler создает новый AuthHandler
func NewAuthHandler(authService *service.AuthService, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// RegisterRequest представляет тело запроса на регистрацию
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Validate проверяет запрос на регистрацию
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 72)),
		validation.Field(&r.FirstName, validation.Length(0, 100)),
		validation.Field(&r.LastName, validation.Length(0, 100)),
	)
}

// LoginRequest представляет тело запроса на логин
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate проверяет запрос на логин
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// ForgotPasswordRequest представляет тело запроса на сброс пароля
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// Validate проверяет запрос на сброс пароля
func (r ForgotPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// ResetPasswordRequest представляет тело запроса на установку нового пароля
type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// Validate проверяет запрос на установку нового пароля
func (r ResetPasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(6, 72)),
	)
}

// Register обрабатывает POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeRequest(r, &req); err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, result)
}

// Login обрабатывает POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeRequest(r, &req); err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, result)
}

// ForgotPassword обрабатывает POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := decodeRequest(r, &req); err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	if _, err := h.authService.InitiatePasswordReset(r.Context(), req.Email); err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Password reset instructions sent to your email"})
}

// ResetPassword обрабатывает POST /auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := decodeRequest(r, &req); err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	if err := h.authService.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Password has been reset successfully"})
}
