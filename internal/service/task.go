package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aidar/remote-work-hub/internal/domain"
	"github.com/aidar/remote-work-hub/internal/repository"
)

// CreateTaskInput holds the fields of a new task.
type CreateTaskInput struct {
	Title       string
	Description string
}

// TaskService owns the task lifecycle: TODO -> DONE -> CERTIFIED.
type TaskService struct {
	taskRepo repository.TaskRepository
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	policy   *Policy
	now      func() time.Time
	log      *zap.SugaredLogger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	teamRepo repository.TeamRepository,
	userRepo repository.UserRepository,
	policy *Policy,
	opts ...Option,
) *TaskService {
	o := newOptions(opts)
	return &TaskService{
		taskRepo: taskRepo,
		teamRepo: teamRepo,
		userRepo: userRepo,
		policy:   policy,
		now:      o.now,
		log:      o.logger,
	}
}

// Create adds a TODO task to the team.
func (s *TaskService) Create(ctx context.Context, teamID string, in CreateTaskInput) (*domain.Task, error) {
	exists, err := s.teamRepo.Exists(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrTeamNotFound
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrEmptyTaskTitle
	}

	task := &domain.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: in.Description,
		TeamID:      teamID,
		Status:      domain.TaskStatusTodo,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.log.Infow("task created", "task_id", task.ID, "team_id", teamID)
	return task, nil
}

// Assign sets the assignee of a task. The status is left unchanged.
func (s *TaskService) Assign(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	task.AssigneeID = &user.ID

	if err := s.taskRepo.Update(ctx, task, task.Status); err != nil {
		return nil, err
	}

	s.log.Infow("task assigned", "task_id", task.ID, "assignee_id", user.ID)
	return task, nil
}

// Complete marks a task DONE and stamps the completion date.
// Completing a DONE task again refreshes the date; certified tasks are final.
func (s *TaskService) Complete(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.Status.IsTerminal() {
		return nil, domain.ErrTaskAlreadyCertified
	}

	previous := task.Status
	refresh := task.IsCompleted()
	now := s.now()
	task.Status = domain.TaskStatusDone
	task.CompletionDate = &now

	if err := s.taskRepo.Update(ctx, task, previous); err != nil {
		return nil, err
	}

	if refresh {
		s.log.Infow("task completion date refreshed", "task_id", task.ID)
	} else {
		s.log.Infow("task completed", "task_id", task.ID)
	}
	return task, nil
}

// Certify approves a DONE task on behalf of certifier.
// The role check comes first, so callers without the right role are rejected
// regardless of the task state.
func (s *TaskService) Certify(ctx context.Context, taskID string, certifier *domain.Principal) (*domain.Task, error) {
	if err := s.policy.Authorize(certifier, ActionCertifyTask); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return nil, domain.ErrCertifyForbidden
		}
		return nil, err
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !domain.CanTransition(task.Status, domain.TaskStatusCertified) {
		return nil, domain.ErrTaskNotDone
	}

	certifierID := certifier.User.ID
	task.CertifiedByID = &certifierID
	task.Status = domain.TaskStatusCertified

	if err := s.taskRepo.Update(ctx, task, domain.TaskStatusDone); err != nil {
		return nil, err
	}

	s.log.Infow("task certified", "task_id", task.ID, "certified_by", certifierID)
	return task, nil
}

// GetByID retrieves a task by ID
func (s *TaskService) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	return s.taskRepo.GetByID(ctx, taskID)
}

// ListByTeam returns all tasks of a team
func (s *TaskService) ListByTeam(ctx context.Context, teamID string) ([]*domain.Task, error) {
	return s.taskRepo.ListByTeam(ctx, teamID)
}

// ListActiveByTeam returns the TODO tasks of a team
func (s *TaskService) ListActiveByTeam(ctx context.Context, teamID string) ([]*domain.Task, error) {
	return s.taskRepo.ListActiveByTeam(ctx, teamID)
}

// ListActiveByUser returns the TODO tasks assigned to a user
func (s *TaskService) ListActiveByUser(ctx context.Context, userID string) ([]*domain.Task, error) {
	return s.taskRepo.ListActiveByAssignee(ctx, userID)
}

// CountPending returns the number of TODO tasks
func (s *TaskService) CountPending(ctx context.Context) (int64, error) {
	return s.taskRepo.CountByStatus(ctx, domain.TaskStatusTodo)
}

// CountCompletedToday returns the number of tasks completed in the last 24 hours
func (s *TaskService) CountCompletedToday(ctx context.Context) (int64, error) {
	return s.taskRepo.CountCompletedSince(ctx, s.now().Add(-24*time.Hour))
}
