package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/aidar/remote-work-hub/internal/service"
)

// StatsHandler обрабатывает эндпоинты статистики
type StatsHandler struct {
	statsService *service.StatsService
	log          *zap.SugaredLogger
}

// NewStatsHandler создает новый StatsHandler
func NewStatsHandler(statsService *service.StatsService, log *zap.SugaredLogger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		log:          log,
	}
}

// GetStats обрабатывает GET /stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.GetStats(r.Context())
	if err != nil {
		HandleError(w, r, h.log, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, stats)
}
