package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/remote-work-hub/internal/domain"
)

const taskColumns = `
	id, title, description, team_id, assignee_id, status, certified_by,
	completion_date, created_at, updated_at
`

// TaskRepository реализует repository.TaskRepository для PostgreSQL
type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository создает новый экземпляр TaskRepository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create сохраняет новую задачу
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, team_id, assignee_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.TeamID,
		task.AssigneeID,
		task.Status,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		pgErr, ok := pgError(err)
		if ok && pgErr.Code == codeForeignKeyViolation {
			if pgErr.ConstraintName == "tasks_team_id_fkey" {
				return domain.ErrTeamNotFound
			}
			return domain.ErrUserNotFound
		}
		if ok && pgErr.Code == codeInvalidTextRepr {
			return domain.ErrTeamNotFound
		}
		return err
	}

	return nil
}

// GetByID получает задачу по ID
func (r *TaskRepository) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := scanTask(r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || hasCode(err, codeInvalidTextRepr) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

// Update сохраняет изменяемые поля задачи. Запись выполняется только если статус
// в базе совпадает с expected, иначе задачу уже изменил другой запрос
func (r *TaskRepository) Update(ctx context.Context, task *domain.Task, expected domain.TaskStatus) error {
	query := `
		UPDATE tasks
		SET assignee_id = $1,
		    status = $2,
		    certified_by = $3,
		    completion_date = $4,
		    updated_at = NOW()
		WHERE id = $5 AND status = $6
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		task.AssigneeID,
		task.Status,
		task.CertifiedByID,
		task.CompletionDate,
		task.ID,
		expected,
	).Scan(&task.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Отличаем удаленную задачу от конкурентного изменения статуса
			if _, getErr := r.GetByID(ctx, task.ID); errors.Is(getErr, domain.ErrTaskNotFound) {
				return domain.ErrTaskNotFound
			}
			return domain.ErrTaskConflict
		}
		if hasCode(err, codeForeignKeyViolation) {
			return domain.ErrUserNotFound
		}
		return err
	}

	return nil
}

// ListByTeam возвращает все задачи команды в порядке создания
func (r *TaskRepository) ListByTeam(ctx context.Context, teamID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE team_id = $1 ORDER BY created_at, id`
	return r.list(ctx, query, teamID)
}

// ListActiveByTeam возвращает незавершенные задачи команды
func (r *TaskRepository) ListActiveByTeam(ctx context.Context, teamID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE team_id = $1 AND status = $2 ORDER BY created_at, id`
	return r.list(ctx, query, teamID, domain.TaskStatusTodo)
}

// ListActiveByAssignee возвращает незавершенные задачи пользователя
func (r *TaskRepository) ListActiveByAssignee(ctx context.Context, userID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE assignee_id = $1 AND status = $2 ORDER BY created_at, id`
	return r.list(ctx, query, userID, domain.TaskStatusTodo)
}

// CountByStatus возвращает количество задач в статусе
func (r *TaskRepository) CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE status = $1`, status).Scan(&count)
	return count, err
}

// CountCompletedSince возвращает количество задач, завершенных после since
// (сертифицированные задачи тоже считаются завершенными)
func (r *TaskRepository) CountCompletedSince(ctx context.Context, since time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM tasks
		WHERE status IN ($1, $2) AND completion_date > $3
	`

	var count int64
	err := r.db.QueryRow(ctx, query, domain.TaskStatusDone, domain.TaskStatusCertified, since).Scan(&count)
	return count, err
}

func (r *TaskRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		if hasCode(err, codeInvalidTextRepr) {
			return []*domain.Task{}, nil
		}
		return nil, err
	}
	defer rows.Close()

	// Return empty array instead of nil if no tasks found
	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		if hasCode(err, codeInvalidTextRepr) {
			return []*domain.Task{}, nil
		}
		return nil, err
	}

	return tasks, nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.TeamID,
		&task.AssigneeID,
		&task.Status,
		&task.CertifiedByID,
		&task.CompletionDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
