package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aidar/remote-work-hub/internal/domain"
	"github.com/aidar/remote-work-hub/internal/repository"
)

// CreateTeamInput holds the fields of a new team.
type CreateTeamInput struct {
	Name        string
	Description string
	ManagerID   *string
}

// TeamService handles business logic for teams
type TeamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
	log      *zap.SugaredLogger
}

// NewTeamService creates a new TeamService
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository, opts ...Option) *TeamService {
	o := newOptions(opts)
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		log:      o.logger,
	}
}

// Create creates a new team with a unique name
func (s *TeamService) Create(ctx context.Context, in CreateTeamInput) (*domain.Team, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrEmptyTeamName
	}

	// Check if team already exists
	exists, err := s.teamRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrTeamExists
	}

	if in.ManagerID != nil {
		if _, err := s.userRepo.GetByID(ctx, *in.ManagerID); err != nil {
			return nil, err
		}
	}

	team := &domain.Team{
		ID:          uuid.NewString(),
		Name:        name,
		Description: in.Description,
		ManagerID:   in.ManagerID,
		Members:     []domain.TeamMember{},
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}

	s.log.Infow("team created", "team_id", team.ID, "name", team.Name)
	return team, nil
}

// AddMember adds a user to a team and returns the updated team.
// A user that is already a member is rejected with ErrAlreadyMember.
func (s *TeamService) AddMember(ctx context.Context, teamID, userID string) (*domain.Team, error) {
	exists, err := s.teamRepo.Exists(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to check team: %w", err)
	}
	if !exists {
		return nil, domain.ErrTeamNotFound
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	member, err := s.teamRepo.IsMember(ctx, teamID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if member {
		return nil, domain.ErrAlreadyMember
	}

	// The store rejects the loser of a concurrent add with the same error
	if err := s.teamRepo.AddMember(ctx, teamID, user.ID); err != nil {
		return nil, err
	}

	s.log.Infow("team member added", "team_id", teamID, "user_id", user.ID)
	return s.teamRepo.GetByID(ctx, teamID)
}

// GetByID retrieves a team with all members
func (s *TeamService) GetByID(ctx context.Context, teamID string) (*domain.Team, error) {
	return s.teamRepo.GetByID(ctx, teamID)
}

// List returns all teams
func (s *TeamService) List(ctx context.Context) ([]*domain.Team, error) {
	return s.teamRepo.List(ctx)
}

// ListByMember returns the teams a user belongs to
func (s *TeamService) ListByMember(ctx context.Context, userID string) ([]*domain.Team, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.teamRepo.ListByMember(ctx, userID)
}

// Count returns the number of teams
func (s *TeamService) Count(ctx context.Context) (int64, error) {
	return s.teamRepo.Count(ctx)
}
