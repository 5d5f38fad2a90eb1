package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"

	"github.com/aidar/remote-work-hub/internal/domain"
	"github.com/aidar/remote-work-hub/internal/service"
)

// UserHandler обрабатывает эндпоинты пользователей
type UserHandler struct {
	userService *service.UserService
	teamService *service.TeamService
	log         *zap.SugaredLogger
}

// NewUserHandler создает новый UserHandler
func NewUserHandler(userService *service.UserService, teamService *service.TeamService, log *zap.SugaredLogger) *UserHandler {
	return &UserHandler{
		userService: userService,
		teamService: teamService,
		log:         log,
	}
}

// UpdateProfileRequest представляет тело запроса на изменение профиля
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Validate проверяет запрос на изменение профиля
func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Length(0, 100)),
		validation.Field(&r.LastName, validation.Length(0, 100)),
	)
}

// Me обрабатывает GET /users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, principal.User)
}

// UpdateMe обрабатывает PUT /users/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	var req UpdateProfileRequest
	if err := decodeRequest(r, &req); err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), principal.User.ID, domain.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, user)
}

// Get обрабатывает GET /users/{userID}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetByID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, user)
}

// Teams обрабатывает GET /users/{userID}/teams
func (h *UserHandler) Teams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListByMember(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, teams)
}

// Count обрабатывает GET /users/count
func (h *UserHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.userService.Count(r.Context())
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, CountResponse{Count: count})
}

// List обрабатывает GET /users и GET /admin/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, users)
}

// Delete обрабатывает DELETE /admin/users/{userID}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Delete(r.Context(), chi.URLParam(r, "userID")); err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}
