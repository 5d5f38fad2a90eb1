package service

import (
	"fmt"

	"github.com/aidar/remote-work-hub/internal/domain"
)

// Action names an operation guarded by the authorization policy.
type Action string

// Guarded actions.
const (
	ActionListUsers     Action = "list_users"
	ActionDeleteUser    Action = "delete_user"
	ActionViewUsers     Action = "view_users"
	ActionAddTeamMember Action = "add_team_member"
	ActionCreateTeam    Action = "create_team"
	ActionViewTeams     Action = "view_teams"
	ActionCreateTask    Action = "create_task"
	ActionAssignTask    Action = "assign_task"
	ActionCompleteTask  Action = "complete_task"
	ActionCertifyTask   Action = "certify_task"
	ActionViewTasks     Action = "view_tasks"
	ActionViewStats     Action = "view_stats"
)

// Policy maps each action to the set of roles allowed to perform it.
// Actions missing from the table are denied.
type Policy struct {
	rules map[Action]map[domain.Role]struct{}
}

// NewPolicy builds a Policy from an action -> allowed roles table.
func NewPolicy(table map[Action][]domain.Role) *Policy {
	rules := make(map[Action]map[domain.Role]struct{}, len(table))
	for action, roles := range table {
		set := make(map[domain.Role]struct{}, len(roles))
		for _, role := range roles {
			set[role] = struct{}{}
		}
		rules[action] = set
	}
	return &Policy{rules: rules}
}

// DefaultPolicy returns the role table of the application.
func DefaultPolicy() *Policy {
	everyone := domain.AllRoles()

	return NewPolicy(map[Action][]domain.Role{
		ActionListUsers:     {domain.RoleAdmin},
		ActionDeleteUser:    {domain.RoleAdmin},
		ActionAddTeamMember: {domain.RoleAdmin, domain.RoleTeamLead},
		ActionCertifyTask:   {domain.RoleAdmin, domain.RoleTeamLead, domain.RoleManager},
		ActionViewUsers:     everyone,
		ActionCreateTeam:    everyone,
		ActionViewTeams:     everyone,
		ActionCreateTask:    everyone,
		ActionAssignTask:    everyone,
		ActionCompleteTask:  everyone,
		ActionViewTasks:     everyone,
		ActionViewStats:     everyone,
	})
}

// Allowed reports whether role may perform action.
func (p *Policy) Allowed(role domain.Role, action Action) bool {
	roles, ok := p.rules[action]
	if !ok {
		return false
	}
	_, ok = roles[role]
	return ok
}

// Authorize checks the authorities of principal against action.
// It returns ErrUnauthenticated without a principal and ErrForbidden when no authority matches.
func (p *Policy) Authorize(principal *domain.Principal, action Action) error {
	if principal == nil || principal.User == nil {
		return domain.ErrUnauthenticated
	}

	for _, authority := range principal.Authorities {
		role, err := domain.RoleFromAuthority(authority)
		if err != nil {
			continue
		}
		if p.Allowed(role, action) {
			return nil
		}
	}

	return fmt.Errorf("%s: %w", action, domain.ErrForbidden)
}
