package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/authgate/internal/gateway/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

type RecoveryStartInput struct {
	SessionID string `validate:"required"`
	Email     string `validate:"required,email"`
}

type RecoveryStartOutput struct {
	Email     string
	ExpiresIn time.Duration
}

// RecoveryStart begins password recovery for an existing account: the email
// must be present in the account store, then a recover-flow challenge is
// issued to it.
func (s *Usecase) RecoveryStart(ctx context.Context, in RecoveryStartInput) (*RecoveryStartOutput, error) {
	ctx, span := s.startSpan(ctx, "RecoveryStart")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	acct, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "recovery requested for unknown email", "email", in.Email)
		return nil, goerror.NewBusiness("No account found with that email", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	sess, err := s.loadSession(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	sess.VerifyEmail = acct.Email
	sess.RecoveryVerified = false

	if s.engine.ShouldIssue(sess, entity.FlowRecover, false) {
		if err := s.engine.Issue(ctx, sess, entity.FlowRecover, acct.Email); err != nil {
			return nil, err
		}
	}

	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}

	return &RecoveryStartOutput{
		Email:     acct.Email,
		ExpiresIn: s.engine.TTL(),
	}, nil
}
