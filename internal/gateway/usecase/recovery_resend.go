package usecase

import (
	"context"

	"github.com/shandysiswandi/authgate/internal/gateway/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

type RecoveryResendInput struct {
	SessionID string `validate:"required"`
}

// RecoveryResend reissues the recovery challenge unconditionally.
func (s *Usecase) RecoveryResend(ctx context.Context, in RecoveryResendInput) error {
	ctx, span := s.startSpan(ctx, "RecoveryResend")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	return s.reissue(ctx, in.SessionID, entity.FlowRecover)
}
