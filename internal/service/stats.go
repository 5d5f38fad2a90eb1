package service

import (
	"context"
	"time"

	"github.com/aidar/remote-work-hub/internal/domain"
	"github.com/aidar/remote-work-hub/internal/repository"
)

// Stats represents the dashboard summary
type Stats struct {
	TotalUsers          int64 `json:"totalUsers"`
	TotalTeams          int64 `json:"totalTeams"`
	PendingTasks        int64 `json:"pendingTasks"`
	CompletedTasksToday int64 `json:"completedTasksToday"`
}

// StatsService handles statistics queries
type StatsService struct {
	userRepo repository.UserRepository
	teamRepo repository.TeamRepository
	taskRepo repository.TaskRepository
	now      func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(
	userRepo repository.UserRepository,
	teamRepo repository.TeamRepository,
	taskRepo repository.TaskRepository,
	opts ...Option,
) *StatsService {
	o := newOptions(opts)
	return &StatsService{
		userRepo: userRepo,
		teamRepo: teamRepo,
		taskRepo: taskRepo,
		now:      o.now,
	}
}

// GetStats returns overall statistics
func (s *StatsService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	var err error

	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}

	if stats.TotalTeams, err = s.teamRepo.Count(ctx); err != nil {
		return nil, err
	}

	if stats.PendingTasks, err = s.taskRepo.CountByStatus(ctx, domain.TaskStatusTodo); err != nil {
		return nil, err
	}

	if stats.CompletedTasksToday, err = s.taskRepo.CountCompletedSince(ctx, s.now().Add(-24*time.Hour)); err != nil {
		return nil, err
	}

	return stats, nil
}
