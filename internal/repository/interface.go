package repository

import (
	"context"
	"time"

	"github.com/aidar/remote-work-hub/internal/domain"
)

// UserRepository определяет методы для работы с данными пользователей
type UserRepository interface {
	// Create сохраняет нового пользователя
	Create(ctx context.Context, user *domain.User) error

	// GetByID получает пользователя по ID
	GetByID(ctx context.Context, userID string) (*domain.User, error)

	// GetByUsername получает пользователя по уникальному имени
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail получает пользователя по уникальному email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByResetToken получает пользователя по токену сброса пароля
	GetByResetToken(ctx context.Context, token string) (*domain.User, error)

	// ExistsByUsername проверяет, занято ли имя пользователя
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail проверяет, занят ли email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List возвращает всех пользователей
	List(ctx context.Context) ([]*domain.User, error)

	// Delete удаляет пользователя по ID
	Delete(ctx context.Context, userID string) error

	// Count возвращает количество пользователей
	Count(ctx context.Context) (int64, error)

	// UpdateProfile обновляет имя и фамилию пользователя
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)

	// SetPasswordReset сохраняет токен сброса пароля, перезаписывая предыдущий
	SetPasswordReset(ctx context.Context, userID, token string, expiresAt time.Time) error

	// ResetPassword сохраняет новый хеш пароля и очищает токен сброса, если у пользователя
	// все еще хранится token (иначе ErrResetTokenInvalid)
	ResetPassword(ctx context.Context, userID, token, passwordHash string) error
}

// TeamRepository определяет методы для работы с данными команд
type TeamRepository interface {
	// Create создает новую команду
	Create(ctx context.Context, team *domain.Team) error

	// GetByID получает команду со всеми участниками
	GetByID(ctx context.Context, teamID string) (*domain.Team, error)

	// Exists проверяет существование команды по ID
	Exists(ctx context.Context, teamID string) (bool, error)

	// ExistsByName проверяет существование команды с таким именем
	ExistsByName(ctx context.Context, name string) (bool, error)

	// List возвращает все команды с участниками
	List(ctx context.Context) ([]*domain.Team, error)

	// ListByMember возвращает команды, в которых состоит пользователь
	ListByMember(ctx context.Context, userID string) ([]*domain.Team, error)

	// Count возвращает количество команд
	Count(ctx context.Context) (int64, error)

	// IsMember проверяет членство пользователя в команде
	IsMember(ctx context.Context, teamID, userID string) (bool, error)

	// AddMember добавляет пользователя в команду (повторное добавление -> ErrAlreadyMember)
	AddMember(ctx context.Context, teamID, userID string) error
}

// TaskRepository определяет методы для работы с данными задач
type TaskRepository interface {
	// Create сохраняет новую задачу
	Create(ctx context.Context, task *domain.Task) error

	// GetByID получает задачу по ID
	GetByID(ctx context.Context, taskID string) (*domain.Task, error)

	// Update сохраняет задачу, если ее статус в хранилище все еще равен expected
	// (иначе ErrTaskConflict)
	Update(ctx context.Context, task *domain.Task, expected domain.TaskStatus) error

	// ListByTeam возвращает все задачи команды в порядке создания
	ListByTeam(ctx context.Context, teamID string) ([]*domain.Task, error)

	// ListActiveByTeam возвращает незавершенные задачи команды
	ListActiveByTeam(ctx context.Context, teamID string) ([]*domain.Task, error)

	// ListActiveByAssignee возвращает незавершенные задачи пользователя
	ListActiveByAssignee(ctx context.Context, userID string) ([]*domain.Task, error)

	// CountByStatus возвращает количество задач в статусе
	CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error)

	// CountCompletedSince возвращает количество задач, завершенных после since
	CountCompletedSince(ctx context.Context, since time.Time) (int64, error)
}
