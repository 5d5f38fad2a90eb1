package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"

	"github.com/aidar/remote-work-hub/internal/service"
)

// TaskHandler обрабатывает эндпоинты задач
type TaskHandler struct {
	taskService *service.TaskService
	log         *zap.SugaredLogger
}

// NewTaskHandler создает новый TaskHandler
func NewTaskHandler(taskService *service.TaskService, log *zap.SugaredLogger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log,
	}
}

// CreateTaskRequest представляет тело запроса на создание задачи
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate проверяет запрос на создание задачи. Пустой после обрезки
// пробелов заголовок отклоняет сервис
func (r CreateTaskRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

// Create обрабатывает POST /tasks?teamId=...
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("teamId")
	if teamID == "" {
		RespondWithError(w, r, http.StatusBadRequest, CodeBadRequest, "teamId query parameter is required")
		return
	}

	var req CreateTaskRequest
	if err := decodeRequest(r, &req); err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	task, err := h.taskService.Create(r.Context(), teamID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, task)
}

// Get обрабатывает GET /tasks/{taskID}
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskService.GetByID(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, task)
}

// Assign обрабатывает PUT /tasks/{taskID}/assign/{userID}
func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskService.Assign(r.Context(), chi.URLParam(r, "taskID"), chi.URLParam(r, "userID"))
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, task)
}

// Complete обрабатывает PUT /tasks/{taskID}/complete
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskService.Complete(r.Context(), chi.URLParam(r, "taskID"))
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, task)
}

// Certify обрабатывает PUT /tasks/{taskID}/certify. Право на сертификацию
// проверяет сервис по роли текущего пользователя
func (h *TaskHandler) Certify(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	task, err := h.taskService.Certify(r.Context(), chi.URLParam(r, "taskID"), principal)
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, task)
}

// ListByTeam обрабатывает GET /tasks/team/{teamID}
func (h *TaskHandler) ListByTeam(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListByTeam(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, tasks)
}

// ListActiveByTeam обрабатывает GET /tasks/active/team/{teamID}
func (h *TaskHandler) ListActiveByTeam(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListActiveByTeam(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, tasks)
}

// ListActiveByUser обрабатывает GET /tasks/active/user/{userID}
func (h *TaskHandler) ListActiveByUser(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListActiveByUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, tasks)
}

// CountPending обрабатывает GET /tasks/pending/count
func (h *TaskHandler) CountPending(w http.ResponseWriter, r *http.Request) {
	count, err := h.taskService.CountPending(r.Context())
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, CountResponse{Count: count})
}

// CountCompletedToday обрабатывает GET /tasks/completed-today/count
func (h *TaskHandler) CountCompletedToday(w http.ResponseWriter, r *http.Request) {
	count, err := h.taskService.CountCompletedToday(r.Context())
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, CountResponse{Count: count})
}
