package domain

import "strings"

// Role представляет роль пользователя в системе
type Role string

// Роли пользователей. Порядок привилегий не предполагается:
// права проверяются по явным множествам ролей
const (
	RoleUser     Role = "USER"
	RoleTeamLead Role = "TEAM_LEAD"
	RoleManager  Role = "MANAGER"
	RoleAdmin    Role = "ADMIN"
)

// AuthorityPrefix префикс метки полномочий, выдаваемой роли
const AuthorityPrefix = "ROLE_"

// AllRoles возвращает все известные роли
func AllRoles() []Role {
	return []Role{RoleUser, RoleTeamLead, RoleManager, RoleAdmin}
}

// IsValid возвращает true для известных ролей
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleTeamLead, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// Authority возвращает метку полномочий вида ROLE_<ROLE>
func (r Role) Authority() string {
	return AuthorityPrefix + string(r)
}

// ParseRole разбирает строку в роль (без учета регистра)
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// RoleFromAuthority извлекает роль из метки полномочий ROLE_<ROLE>
func RoleFromAuthority(authority string) (Role, error) {
	if !strings.HasPrefix(authority, AuthorityPrefix) {
		return "", ErrInvalidRole
	}
	return ParseRole(strings.TrimPrefix(authority, AuthorityPrefix))
}
