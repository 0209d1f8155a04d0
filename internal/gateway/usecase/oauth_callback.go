package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

type OAuthCallbackInput struct {
	SessionID string `validate:"required"`
	State     string `validate:"required"`
	Code      string `validate:"required"`
}

type OAuthCallbackOutput struct {
	AccessToken string
	Email       string
}

// OAuthCallback completes a third-party sign-in: state check, code exchange,
// profile fetch, then a clean authenticated session. This path lives entirely
// outside the passcode state machine.
func (s *Usecase) OAuthCallback(ctx context.Context, in OAuthCallbackInput) (*OAuthCallbackOutput, error) {
	ctx, span := s.startSpan(ctx, "OAuthCallback")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	sess, err := s.loadSession(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	if sess.OAuthState == "" ||
		subtle.ConstantTimeCompare([]byte(sess.OAuthState), []byte(in.State)) != 1 {
		slog.WarnContext(ctx, "oauth state mismatch")
		return nil, goerror.NewBusiness("Sign-in request could not be verified", goerror.CodeUnauthorized)
	}

	token, err := s.idp.Exchange(ctx, in.Code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to exchange authorization code", "error", err)
		return nil, goerror.NewBusiness("Could not complete sign-in with the provider", goerror.CodeBadGateway)
	}

	prof, err := s.idp.FetchProfile(ctx, token)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch provider profile", "error", err)
		return nil, goerror.NewBusiness("Could not complete sign-in with the provider", goerror.CodeBadGateway)
	}

	// Federated identities need no local row; a matching account links by
	// email when one exists.
	var accountID int64
	acct, err := s.repoDB.GetAccountByEmail(ctx, prof.Email)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", prof.Email, "error", err)
		return nil, goerror.NewServer(err)
	}
	if acct != nil {
		accountID = acct.ID
	}

	accessToken, err := s.jwt.Generate(accountID, prof.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "email", prof.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	sess.Reset()
	sess.AccountID = accountID
	sess.Email = prof.Email
	sess.OAuthToken = token

	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}

	return &OAuthCallbackOutput{
		AccessToken: accessToken,
		Email:       prof.Email,
	}, nil
}
