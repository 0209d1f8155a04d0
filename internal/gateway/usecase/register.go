package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/authgate/internal/gateway/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

type RegisterInput struct {
	SessionID string `validate:"required"`
	FullName  string `validate:"required,min=3,max=100"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required,password"`
	Phone     string `validate:"omitempty,e164"`
}

type RegisterOutput struct {
	Email     string
	ExpiresIn time.Duration
}

// Register stages a new account in the session and issues the email
// verification challenge. Nothing is persisted until the code validates; the
// duplicate pre-check here is advisory, the unique index at insert time is
// the real guard.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	exists, err := s.repoDB.EmailExists(ctx, in.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check email exists", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}
	if exists {
		return nil, goerror.NewBusiness(msgEmailTaken, goerror.CodeConflict)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	sess, err := s.loadSession(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	sess.Pending = &entity.PendingRegistration{
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		Phone:        in.Phone,
	}

	if s.engine.ShouldIssue(sess, entity.FlowRegister, false) {
		if err := s.engine.Issue(ctx, sess, entity.FlowRegister, in.Email); err != nil {
			return nil, err
		}
	}

	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}

	return &RegisterOutput{
		Email:     in.Email,
		ExpiresIn: s.engine.TTL(),
	}, nil
}
