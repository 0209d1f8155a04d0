package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/authgate/internal/gateway/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

type RecoveryVerifyInput struct {
	SessionID string `validate:"required"`
	Code      string `validate:"required,numeric"`
}

type RecoveryVerifyOutput struct {
	Email string
}

// RecoveryVerify marks email ownership proven for password reset. The reset
// endpoint itself is gated separately on that flag.
func (s *Usecase) RecoveryVerify(ctx context.Context, in RecoveryVerifyInput) (*RecoveryVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "RecoveryVerify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	sess, err := s.loadSession(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	if sess.VerifyEmail == "" {
		slog.WarnContext(ctx, "recovery verify without a pending recovery")
		return nil, goerror.NewBusiness(msgNothingInProgress, goerror.CodeUnauthorized)
	}

	if err := s.challengeOutcome(ctx, entity.FlowRecover,
		s.engine.Validate(sess, entity.FlowRecover, in.Code)); err != nil {
		return nil, err
	}

	sess.RecoveryVerified = true

	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}

	return &RecoveryVerifyOutput{Email: sess.VerifyEmail}, nil
}
