// Package mocks provides testify mocks of the storage contracts.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/aidar/remote-work-hub/internal/domain"
	"github.com/aidar/remote-work-hub/internal/repository"
)

var (
	_ repository.UserRepository = (*UserRepository)(nil)
	_ repository.TeamRepository = (*TeamRepository)(nil)
	_ repository.TaskRepository = (*TaskRepository)(nil)
)

// UserRepository is a mock of repository.UserRepository.
type UserRepository struct{ mock.Mock }

func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return user(m.Called(ctx, userID))
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return user(m.Called(ctx, username))
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return user(m.Called(ctx, email))
}

func (m *UserRepository) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return user(m.Called(ctx, token))
}

func (m *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *UserRepository) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *UserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepository) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	return user(m.Called(ctx, userID, update))
}

func (m *UserRepository) SetPasswordReset(ctx context.Context, userID, token string, expiresAt time.Time) error {
	return m.Called(ctx, userID, token, expiresAt).Error(0)
}

func (m *UserRepository) ResetPassword(ctx context.Context, userID, token, passwordHash string) error {
	return m.Called(ctx, userID, token, passwordHash).Error(0)
}

// TeamRepository is a mock of repository.TeamRepository.
type TeamRepository struct{ mock.Mock }

func (m *TeamRepository) Create(ctx context.Context, team *domain.Team) error {
	return m.Called(ctx, team).Error(0)
}

func (m *TeamRepository) GetByID(ctx context.Context, teamID string) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *TeamRepository) Exists(ctx context.Context, teamID string) (bool, error) {
	args := m.Called(ctx, teamID)
	return args.Bool(0), args.Error(1)
}

func (m *TeamRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *TeamRepository) List(ctx context.Context) ([]*domain.Team, error) {
	return teams(m.Called(ctx))
}

func (m *TeamRepository) ListByMember(ctx context.Context, userID string) ([]*domain.Team, error) {
	return teams(m.Called(ctx, userID))
}

func (m *TeamRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TeamRepository) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *TeamRepository) AddMember(ctx context.Context, teamID, userID string) error {
	return m.Called(ctx, teamID, userID).Error(0)
}

// TaskRepository is a mock of repository.TaskRepository.
type TaskRepository struct{ mock.Mock }

func (m *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *TaskRepository) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *TaskRepository) Update(ctx context.Context, task *domain.Task, expected domain.TaskStatus) error {
	return m.Called(ctx, task, expected).Error(0)
}

func (m *TaskRepository) ListByTeam(ctx context.Context, teamID string) ([]*domain.Task, error) {
	return tasks(m.Called(ctx, teamID))
}

func (m *TaskRepository) ListActiveByTeam(ctx context.Context, teamID string) ([]*domain.Task, error) {
	return tasks(m.Called(ctx, teamID))
}

func (m *TaskRepository) ListActiveByAssignee(ctx context.Context, userID string) ([]*domain.Task, error) {
	return tasks(m.Called(ctx, userID))
}

func (m *TaskRepository) CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TaskRepository) CountCompletedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func user(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func teams(args mock.Arguments) ([]*domain.Team, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Team), args.Error(1)
}

func tasks(args mock.Arguments) ([]*domain.Task, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}
