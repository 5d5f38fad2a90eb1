package domain

import "time"

// Team представляет команду пользователей
type Team struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	ManagerID   *string      `json:"managerId,omitempty"`
	Members     []TeamMember `json:"members"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// TeamMember представляет участника команды (используется в Team.Members)
type TeamMember struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"isActive"`
}
