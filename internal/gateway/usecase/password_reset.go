package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/authgate/internal/gateway/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

type PasswordResetInput struct {
	SessionID string `validate:"required"`
	Password  string `validate:"required,password"`
}

// PasswordReset updates the password for the recovered account. It is gated
// on the session's recovery-verified flag; reaching it without a validated
// recover-flow challenge is rejected outright. Completing the reset clears
// the flag, the target email, and any leftover challenge.
func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) error {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	sess, err := s.loadSession(ctx, in.SessionID)
	if err != nil {
		return err
	}

	if !sess.RecoveryVerified || sess.VerifyEmail == "" {
		slog.WarnContext(ctx, "password reset attempted without verified recovery")
		return goerror.NewBusiness(msgResetNotAllowed, goerror.CodeForbidden)
	}

	newHash, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "error", err)
		return goerror.NewServer(err)
	}

	err = s.repoDB.UpdatePassword(ctx, sess.VerifyEmail, string(newHash))
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account vanished before password update", "email", sess.VerifyEmail)
		return goerror.NewBusiness("No account found with that email", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update password", "email", sess.VerifyEmail, "error", err)
		return goerror.NewServer(err)
	}

	sess.RecoveryVerified = false
	sess.VerifyEmail = ""
	sess.ClearChallenge(entity.FlowRecover)

	return s.saveSession(ctx, sess)
}
