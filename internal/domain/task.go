package domain

import "time"

// TaskStatus представляет статус задачи
type TaskStatus string

// Возможные статусы задачи. Путь линейный: TODO -> DONE -> CERTIFIED
const (
	TaskStatusTodo      TaskStatus = "TODO"      // Задача в работе
	TaskStatusDone      TaskStatus = "DONE"      // Задача выполнена и ждет сертификации
	TaskStatusCertified TaskStatus = "CERTIFIED" // Терминальный статус
)

// IsTerminal возвращает true, если из статуса нет переходов
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCertified
}

// CanTransition проверяет допустимость перехода from -> to
func CanTransition(from, to TaskStatus) bool {
	switch to {
	case TaskStatusDone:
		// повторное завершение DONE только обновляет дату завершения
		return (from == TaskStatusTodo || from == TaskStatusDone)
	case TaskStatusCertified:
		return from == TaskStatusDone
	default:
		return false
	}
}

// Task представляет рабочую задачу команды
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	TeamID         string     `json:"teamId"`
	AssigneeID     *string    `json:"assignedTo,omitempty"`
	Status         TaskStatus `json:"status"`
	CertifiedByID  *string    `json:"certifiedBy,omitempty"`
	CompletionDate *time.Time `json:"completionDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// IsCompleted возвращает true для завершенных задач (DONE или CERTIFIED)
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusDone || t.Status == TaskStatusCertified
}
