package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/authgate/internal/gateway/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

type RegisterVerifyInput struct {
	SessionID string `validate:"required"`
	Code      string `validate:"required,numeric"`
}

type RegisterVerifyOutput struct {
	Email string
}

// RegisterVerify promotes the staged registration to a durable account row
// once the challenge validates. The insert is the serialization point for
// concurrent registrations of the same email; losing that race surfaces as a
// duplicate-email conflict, never as corrupted state.
func (s *Usecase) RegisterVerify(ctx context.Context, in RegisterVerifyInput) (*RegisterVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "RegisterVerify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	sess, err := s.loadSession(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	if sess.Pending == nil {
		slog.WarnContext(ctx, "register verify without a staged registration")
		return nil, goerror.NewBusiness(msgNothingInProgress, goerror.CodeUnauthorized)
	}

	if err := s.challengeOutcome(ctx, entity.FlowRegister,
		s.engine.Validate(sess, entity.FlowRegister, in.Code)); err != nil {
		return nil, err
	}

	pending := sess.Pending
	err = s.repoDB.CreateAccount(ctx, entity.Account{
		ID:           s.uid.Generate(),
		FullName:     pending.FullName,
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
		Phone:        pending.Phone,
		CreatedAt:    s.clock.Now(),
	})
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "registration lost the insert race", "email", pending.Email)
		sess.Pending = nil
		if errSave := s.saveSession(ctx, sess); errSave != nil {
			return nil, errSave
		}
		return nil, goerror.NewBusiness(msgEmailTaken, goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create account", "email", pending.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	sess.Pending = nil

	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}

	return &RegisterVerifyOutput{Email: pending.Email}, nil
}
