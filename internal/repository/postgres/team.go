package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/remote-work-hub/internal/domain"
)

// TeamRepository реализует repository.TeamRepository для PostgreSQL
type TeamRepository struct {
	db *pgxpool.Pool
}

// NewTeamRepository создает новый экземпляр TeamRepository
func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create создает новую команду
func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) error {
	query := `
		INSERT INTO teams (id, name, description, manager_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query, team.ID, team.Name, team.Description, team.ManagerID).Scan(&team.CreatedAt)
	if err != nil {
		// Check for unique constraint violation (team already exists)
		if hasCode(err, codeUniqueViolation) {
			return domain.ErrTeamExists
		}
		if hasCode(err, codeForeignKeyViolation) || hasCode(err, codeInvalidTextRepr) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if team.Members == nil {
		team.Members = []domain.TeamMember{}
	}

	return nil
}

// GetByID получает команду со всеми участниками
func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (*domain.Team, error) {
	query := `
		SELECT id, name, description, manager_id, created_at
		FROM teams
		WHERE id = $1
	`

	team, err := scanTeam(r.db.QueryRow(ctx, query, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || hasCode(err, codeInvalidTextRepr) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}

	if err := r.loadMembers(ctx, []*domain.Team{team}); err != nil {
		return nil, err
	}

	return team, nil
}

// Exists проверяет существование команды по ID
func (r *TeamRepository) Exists(ctx context.Context, teamID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM teams WHERE id = $1)`

	var exists bool
	err := r.db.QueryRow(ctx, query, teamID).Scan(&exists)
	if err != nil {
		if hasCode(err, codeInvalidTextRepr) {
			return false, nil
		}
		return false, err
	}

	return exists, nil
}

// ExistsByName проверяет существование команды с таким именем
func (r *TeamRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM teams WHERE name = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// List возвращает все команды с участниками
func (r *TeamRepository) List(ctx context.Context) ([]*domain.Team, error) {
	query := `
		SELECT id, name, description, manager_id, created_at
		FROM teams
		ORDER BY created_at, name
	`

	return r.listTeams(ctx, query)
}

// ListByMember возвращает команды, в которых состоит пользователь
func (r *TeamRepository) ListByMember(ctx context.Context, userID string) ([]*domain.Team, error) {
	query := `
		SELECT t.id, t.name, t.description, t.manager_id, t.created_at
		FROM teams t
		INNER JOIN team_members tm ON tm.team_id = t.id
		WHERE tm.user_id = $1
		ORDER BY t.created_at, t.name
	`

	teams, err := r.listTeams(ctx, query, userID)
	if err != nil && hasCode(err, codeInvalidTextRepr) {
		return []*domain.Team{}, nil
	}
	return teams, err
}

// Count возвращает количество команд
func (r *TeamRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM teams`).Scan(&count)
	return count, err
}

// IsMember проверяет членство пользователя в команде
func (r *TeamRepository) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, teamID, userID).Scan(&exists); err != nil {
		if hasCode(err, codeInvalidTextRepr) {
			return false, nil
		}
		return false, err
	}

	return exists, nil
}

// AddMember добавляет пользователя в команду. Первичный ключ (team_id, user_id)
// гарантирует, что из двух конкурентных добавлений успешно только одно
func (r *TeamRepository) AddMember(ctx context.Context, teamID, userID string) error {
	query := `INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`

	_, err := r.db.Exec(ctx, query, teamID, userID)
	if err != nil {
		pgErr, ok := pgError(err)
		if !ok {
			return err
		}
		switch pgErr.Code {
		case codeUniqueViolation:
			return domain.ErrAlreadyMember
		case codeForeignKeyViolation:
			if pgErr.ConstraintName == "team_members_team_id_fkey" {
				return domain.ErrTeamNotFound
			}
			return domain.ErrUserNotFound
		}
		return err
	}

	return nil
}

func (r *TeamRepository) listTeams(ctx context.Context, query string, args ...any) ([]*domain.Team, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []*domain.Team{}
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadMembers(ctx, teams); err != nil {
		return nil, err
	}

	return teams, nil
}

// loadMembers загружает участников для набора команд одним запросом
func (r *TeamRepository) loadMembers(ctx context.Context, teams []*domain.Team) error {
	if len(teams) == 0 {
		return nil
	}

	ids := make([]string, 0, len(teams))
	byID := make(map[string]*domain.Team, len(teams))
	for _, t := range teams {
		t.Members = []domain.TeamMember{}
		ids = append(ids, t.ID)
		byID[t.ID] = t
	}

	query := `
		SELECT tm.team_id, u.id, u.username, u.email, u.role, u.is_active
		FROM team_members tm
		INNER JOIN users u ON u.id = tm.user_id
		WHERE tm.team_id = ANY($1::uuid[])
		ORDER BY tm.joined_at, u.username
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var teamID string
		var member domain.TeamMember
		if err := rows.Scan(&teamID, &member.UserID, &member.Username, &member.Email, &member.Role, &member.IsActive); err != nil {
			return err
		}
		if team, ok := byID[teamID]; ok {
			team.Members = append(team.Members, member)
		}
	}

	return rows.Err()
}

func scanTeam(row pgx.Row) (*domain.Team, error) {
	var team domain.Team
	if err := row.Scan(&team.ID, &team.Name, &team.Description, &team.ManagerID, &team.CreatedAt); err != nil {
		return nil, err
	}
	return &team, nil
}
