package domain

import "time"

// User представляет учетную запись пользователя
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Секреты никогда не сериализуются
	PasswordHash           string     `json:"-"`
	PasswordResetToken     *string    `json:"-"`
	PasswordResetExpiresAt *time.Time `json:"-"`
}

// Authorities возвращает метки полномочий пользователя
func (u *User) Authorities() []string {
	return []string{u.Role.Authority()}
}

// ProfileUpdate содержит изменяемые поля профиля
type ProfileUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// PasswordReset описывает выданный токен сброса пароля
type PasswordReset struct {
	UserID    string
	Email     string
	Token     string
	ExpiresAt time.Time
}
