package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/authgate/internal/gateway/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

type LoginVerifyInput struct {
	SessionID string `validate:"required"`
	Code      string `validate:"required,numeric"`
}

type LoginVerifyOutput struct {
	AccessToken string
}

// LoginVerify completes the second factor. On success the session is wiped
// and rebuilt with only the authenticated identity, and a signed token is
// returned. A mismatch leaves the challenge untouched for a retry.
func (s *Usecase) LoginVerify(ctx context.Context, in LoginVerifyInput) (*LoginVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "LoginVerify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	sess, err := s.loadSession(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	if sess.LoginEmail == "" {
		slog.WarnContext(ctx, "login verify without a pending login")
		return nil, goerror.NewBusiness(msgNothingInProgress, goerror.CodeUnauthorized)
	}

	if err := s.challengeOutcome(ctx, entity.FlowLogin,
		s.engine.Validate(sess, entity.FlowLogin, in.Code)); err != nil {
		return nil, err
	}

	acct, err := s.repoDB.GetAccountByEmail(ctx, sess.LoginEmail)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account vanished between password check and verify", "email", sess.LoginEmail)
		return nil, goerror.NewBusiness(msgInvalidCredentials, goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", sess.LoginEmail, "error", err)
		return nil, goerror.NewServer(err)
	}

	token, err := s.jwt.Generate(acct.ID, acct.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "account_id", acct.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	// Start clean post-login: nothing from the verification journey survives.
	sess.Reset()
	sess.AccountID = acct.ID
	sess.Email = acct.Email

	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}

	return &LoginVerifyOutput{AccessToken: token}, nil
}
