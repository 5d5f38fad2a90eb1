package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aidar/remote-work-hub/internal/domain"
	"github.com/aidar/remote-work-hub/internal/repository"
)

// ResetTokenTTL is how long a password reset token stays valid.
const ResetTokenTTL = time.Hour

// RegisterInput holds the data needed to create an account.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthResult is returned by successful registration and login.
type AuthResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Message  string `json:"message"`
}

// AuthService handles registration, login and password reset.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   *TokenCodec
	notifier ResetNotifier
	now      func() time.Time
	log      *zap.SugaredLogger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	tokens *TokenCodec,
	notifier ResetNotifier,
	opts ...Option,
) *AuthService {
	o := newOptions(opts)
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		notifier: notifier,
		now:      o.now,
		log:      o.logger,
	}
}

// Register creates a USER account and issues a session token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUsernameExists
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
	}

	// Uniqueness is enforced again by the store if a concurrent registration won the race
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infow("user registered", "user_id", user.ID, "username", user.Username)

	return s.result(user, "Registration successful")
}

// Login verifies credentials and issues a session token.
// Unknown users, wrong passwords and disabled accounts all yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			s.log.Warnw("password comparison failed", "user_id", user.ID, "error", err)
		}
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	return s.result(user, "Login successful")
}

// InitiatePasswordReset stores a fresh reset token for the account with email,
// replacing any previous one, and hands it to the notifier.
func (s *AuthService) InitiatePasswordReset(ctx context.Context, email string) (*domain.PasswordReset, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrEmailNotFound
		}
		return nil, err
	}

	reset := domain.PasswordReset{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(ResetTokenTTL),
	}

	if err := s.userRepo.SetPasswordReset(ctx, user.ID, reset.Token, reset.ExpiresAt); err != nil {
		return nil, err
	}

	// The token is stored; a delivery failure must not roll it back
	if err := s.notifier.NotifyPasswordReset(ctx, reset); err != nil {
		s.log.Warnw("failed to deliver password reset", "user_id", user.ID, "error", err)
	}

	return &reset, nil
}

// ResetPassword consumes a reset token and sets a new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" {
		return domain.ErrResetTokenInvalid
	}

	user, err := s.userRepo.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrResetTokenInvalid
		}
		return err
	}

	if user.PasswordResetExpiresAt == nil || s.now().After(*user.PasswordResetExpiresAt) {
		return domain.ErrResetTokenExpired
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	// The store re-checks the token, so a reused or replaced token fails here
	if err := s.userRepo.ResetPassword(ctx, user.ID, token, hash); err != nil {
		return err
	}

	s.log.Infow("password reset completed", "user_id", user.ID)
	return nil
}

func (s *AuthService) result(user *domain.User, message string) (*AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
		Message:  message,
	}, nil
}
