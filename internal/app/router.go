package app

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/aidar/remote-work-hub/internal/handler"
	"github.com/aidar/remote-work-hub/internal/middleware"
	"github.com/aidar/remote-work-hub/internal/service"
)

type routeHandlers struct {
	auth  *handler.AuthHandler
	users *handler.UserHandler
	teams *handler.TeamHandler
	tasks *handler.TaskHandler
	stats *handler.StatsHandler
}

// newRouter собирает маршруты /api/v1
func newRouter(
	h routeHandlers,
	policy *service.Policy,
	resolver func(http.Handler) http.Handler,
	timeout time.Duration,
	log *zap.SugaredLogger,
) chi.Router {
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(timeout))
	r.Use(resolver)

	// Health check для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	allow := func(action service.Action) func(http.Handler) http.Handler {
		return middleware.Authorize(policy, action)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Публичные эндпоинты (без авторизации)
		r.Route("/auth", func(r chi.Router) {
			// Подсказка "Use POST" отдается только логином и регистрацией,
			// остальные эндпоинты отвечают обычным 405
			r.Route("/register", func(r chi.Router) {
				r.MethodNotAllowed(middleware.AuthEndpointHint)
				r.Post("/", h.auth.Register)
			})
			r.Route("/login", func(r chi.Router) {
				r.MethodNotAllowed(middleware.AuthEndpointHint)
				r.Post("/", h.auth.Login)
			})
			r.Post("/forgot-password", h.auth.ForgotPassword)
			r.Post("/reset-password", h.auth.ResetPassword)
		})

		// Защищенные эндпоинты (требуют токен в заголовке Authorization)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireIdentity)

			// Эндпоинты пользователей
			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.users.Me)
				r.Put("/me", h.users.UpdateMe)
				r.With(allow(service.ActionViewUsers)).Get("/count", h.users.Count)
				r.With(allow(service.ActionListUsers)).Get("/", h.users.List)
				r.With(allow(service.ActionViewUsers)).Get("/{userID}", h.users.Get)
				r.With(allow(service.ActionViewTeams)).Get("/{userID}/teams", h.users.Teams)
			})

			// Администрирование
			r.Route("/admin", func(r chi.Router) {
				r.With(allow(service.ActionListUsers)).Get("/users", h.users.List)
				r.With(allow(service.ActionDeleteUser)).Delete("/users/{userID}", h.users.Delete)
				r.With(allow(service.ActionAddTeamMember)).Post("/teams/{teamID}/members", h.teams.AddMemberByBody)
			})

			// Эндпоинты команд
			r.Route("/teams", func(r chi.Router) {
				r.With(allow(service.ActionCreateTeam)).Post("/", h.teams.Create)
				r.With(allow(service.ActionViewTeams)).Get("/", h.teams.List)
				r.With(allow(service.ActionViewTeams)).Get("/count", h.teams.Count)
				r.With(allow(service.ActionViewTeams)).Get("/{teamID}", h.teams.Get)
				r.With(allow(service.ActionAddTeamMember)).Post("/{teamID}/add-member/{userID}", h.teams.AddMember)
			})

			// Эндпоинты задач. Сертификацию по роли проверяет TaskService
			r.Route("/tasks", func(r chi.Router) {
				r.With(allow(service.ActionCreateTask)).Post("/", h.tasks.Create)
				r.With(allow(service.ActionViewTasks)).Get("/pending/count", h.tasks.CountPending)
				r.With(allow(service.ActionViewTasks)).Get("/completed-today/count", h.tasks.CountCompletedToday)
				r.With(allow(service.ActionViewTasks)).Get("/team/{teamID}", h.tasks.ListByTeam)
				r.With(allow(service.ActionViewTasks)).Get("/active/team/{teamID}", h.tasks.ListActiveByTeam)
				r.With(allow(service.ActionViewTasks)).Get("/active/user/{userID}", h.tasks.ListActiveByUser)
				r.With(allow(service.ActionViewTasks)).Get("/{taskID}", h.tasks.Get)
				r.With(allow(service.ActionAssignTask)).Put("/{taskID}/assign/{userID}", h.tasks.Assign)
				r.With(allow(service.ActionCompleteTask)).Put("/{taskID}/complete", h.tasks.Complete)
				r.Put("/{taskID}/certify", h.tasks.Certify)
			})

			// Статистика
			r.With(allow(service.ActionViewStats)).Get("/stats", h.stats.GetStats)
		})
	})

	return r
}
