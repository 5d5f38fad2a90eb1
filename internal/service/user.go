package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/aidar/remote-work-hub/internal/domain"
	"github.com/aidar/remote-work-hub/internal/repository"
)

// UserService handles business logic for users
type UserService struct {
	userRepo repository.UserRepository
	log      *zap.SugaredLogger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, opts ...Option) *UserService {
	o := newOptions(opts)
	return &UserService{
		userRepo: userRepo,
		log:      o.logger,
	}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// List returns all users
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

// Count returns the number of users
func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	s.log.Infow("user deleted", "user_id", userID)
	return nil
}

// UpdateProfile updates the names of a user and returns the updated user
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	update.FirstName = strings.TrimSpace(update.FirstName)
	update.LastName = strings.TrimSpace(update.LastName)

	return s.userRepo.UpdateProfile(ctx, userID, update)
}
