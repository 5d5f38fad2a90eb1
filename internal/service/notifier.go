package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aidar/remote-work-hub/internal/domain"
)

// ResetNotifier delivers a password reset token to the account owner.
type ResetNotifier interface {
	NotifyPasswordReset(ctx context.Context, reset domain.PasswordReset) error
}

// LogResetNotifier writes reset links to the log instead of sending mail.
type LogResetNotifier struct {
	log *zap.SugaredLogger
}

// NewLogResetNotifier creates a LogResetNotifier.
func NewLogResetNotifier(log *zap.SugaredLogger) *LogResetNotifier {
	return &LogResetNotifier{log: log}
}

// NotifyPasswordReset logs the reset token for the user.
func (n *LogResetNotifier) NotifyPasswordReset(_ context.Context, reset domain.PasswordReset) error {
	n.log.Infow("password reset requested",
		"user_id", reset.UserID,
		"email", reset.Email,
		"expires_at", reset.ExpiresAt,
	)
	n.log.Debugw("password reset link", "path", "/reset-password?token="+reset.Token)
	return nil
}
