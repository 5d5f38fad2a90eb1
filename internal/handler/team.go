package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"

	"github.com/aidar/remote-work-hub/internal/service"
)

// TeamHandler обрабатывает эндпоинты команд
type TeamHandler struct {
	teamService *service.TeamService
	log         *zap.SugaredLogger
}

// NewTeamHandler создает новый TeamHandler
func NewTeamHandler(teamService *service.TeamService, log *zap.SugaredLogger) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		log:         log,
	}
}

// CreateTeamRequest представляет тело запроса на создание команды
type CreateTeamRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ManagerID   *string `json:"managerId"`
}

// Validate проверяет запрос на создание команды
func (r CreateTeamRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Length(0, 1000)),
	)
}

// AddMemberRequest представляет тело запроса на добавление участника
type AddMemberRequest struct {
	ID string `json:"id"`
}

// Validate проверяет запрос на добавление участника
func (r AddMemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
	)
}

// Create обрабатывает POST /teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if err := decodeRequest(r, &req); err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	// Создаем команду
	team, err := h.teamService.Create(r.Context(), service.CreateTeamInput{
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   req.ManagerID,
	})
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, team)
}

// List обрабатывает GET /teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.List(r.Context())
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, teams)
}

// Count обрабатывает GET /teams/count
func (h *TeamHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.teamService.Count(r.Context())
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, CountResponse{Count: count})
}

// Get обрабатывает GET /teams/{teamID}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamService.GetByID(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, team)
}

// AddMember обрабатывает POST /teams/{teamID}/add-member/{userID}
func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	h.addMember(w, r, chi.URLParam(r, "teamID"), chi.URLParam(r, "userID"))
}

// AddMemberByBody обрабатывает POST /admin/teams/{teamID}/members
func (h *TeamHandler) AddMemberByBody(w http.ResponseWriter, r *http.Request) {
	var req AddMemberRequest
	if err := decodeRequest(r, &req); err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	h.addMember(w, r, chi.URLParam(r, "teamID"), req.ID)
}

func (h *TeamHandler) addMember(w http.ResponseWriter, r *http.Request, teamID, userID string) {
	team, err := h.teamService.AddMember(r.Context(), teamID, userID)
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, team)
}
