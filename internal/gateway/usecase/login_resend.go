package usecase

import (
	"context"

	"github.com/shandysiswandi/authgate/internal/gateway/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

type LoginResendInput struct {
	SessionID string `validate:"required"`
}

// LoginResend reissues the login challenge unconditionally. The caller
// acknowledges with an empty body.
func (s *Usecase) LoginResend(ctx context.Context, in LoginResendInput) error {
	ctx, span := s.startSpan(ctx, "LoginResend")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	return s.reissue(ctx, in.SessionID, entity.FlowLogin)
}
