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

type LoginInput struct {
	SessionID    string `validate:"required"`
	Email        string `validate:"required,email"`
	Password     string `validate:"required"`
	CaptchaToken string `validate:"required"`
	ClientIP     string
}

type LoginOutput struct {
	Email     string
	ExpiresIn time.Duration
}

// Login runs the bot check, then the credential gate, and on success records
// the candidate identity and issues the second-factor challenge.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	// The credential gate must never run when the bot check does not pass.
	human, err := s.botCheck.Verify(ctx, in.CaptchaToken, in.ClientIP)
	if err != nil {
		slog.ErrorContext(ctx, "bot check provider unreachable", "error", err)
		return nil, goerror.NewServer(err)
	}
	if !human {
		slog.WarnContext(ctx, "bot check rejected the request", "ip", in.ClientIP)
		return nil, goerror.NewBusiness(msgBotCheckFailed, goerror.CodeForbidden)
	}

	acct, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "account not found", "email", in.Email)
		return nil, goerror.NewBusiness(msgInvalidCredentials, goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(acct.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "password does not match", "account_id", acct.ID)
		return nil, goerror.NewBusiness(msgInvalidCredentials, goerror.CodeUnauthorized)
	}

	sess, err := s.loadSession(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	sess.LoginEmail = acct.Email

	if s.engine.ShouldIssue(sess, entity.FlowLogin, false) {
		if err := s.engine.Issue(ctx, sess, entity.FlowLogin, acct.Email); err != nil {
			return nil, err
		}
	}

	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}

	return &LoginOutput{
		Email:     acct.Email,
		ExpiresIn: s.engine.TTL(),
	}, nil
}
