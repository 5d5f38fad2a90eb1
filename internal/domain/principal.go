package domain

// Principal это аутентифицированный инициатор запроса
type Principal struct {
	User        *User
	Authorities []string
}

// NewPrincipal создает Principal для пользователя с полномочиями его роли
func NewPrincipal(user *User) *Principal {
	return &Principal{
		User:        user,
		Authorities: user.Authorities(),
	}
}

// Role возвращает роль инициатора
func (p *Principal) Role() Role {
	if p == nil || p.User == nil {
		return ""
	}
	return p.User.Role
}
