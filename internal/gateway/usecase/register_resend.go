package usecase

import (
	"context"

	"github.com/shandysiswandi/authgate/internal/gateway/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

type RegisterResendInput struct {
	SessionID string `validate:"required"`
}

// RegisterResend reissues the registration challenge unconditionally.
func (s *Usecase) RegisterResend(ctx context.Context, in RegisterResendInput) error {
	ctx, span := s.startSpan(ctx, "RegisterResend")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	return s.reissue(ctx, in.SessionID, entity.FlowRegister)
}
