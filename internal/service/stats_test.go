package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aidar/remote-work-hub/internal/domain"
	"github.com/aidar/remote-work-hub/internal/repository/mocks"
)

func TestStatsService_GetStats(t *testing.T) {
	users := &mocks.UserRepository{}
	teams := &mocks.TeamRepository{}
	tasks := &mocks.TaskRepository{}

	users.On("Count", mock.Anything).Return(int64(5), nil)
	teams.On("Count", mock.Anything).Return(int64(2), nil)
	tasks.On("CountByStatus", mock.Anything, domain.TaskStatusTodo).Return(int64(7), nil)
	tasks.On("CountCompletedSince", mock.Anything, testNow.Add(-24*time.Hour)).Return(int64(1), nil)

	svc := NewStatsService(users, teams, tasks, WithClock(fixedClock(testNow)))

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Stats{TotalUsers: 5, TotalTeams: 2, PendingTasks: 7, CompletedTasksToday: 1}, stats)

	users.AssertExpectations(t)
	teams.AssertExpectations(t)
	tasks.AssertExpectations(t)
}
