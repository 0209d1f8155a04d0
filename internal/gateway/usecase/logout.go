package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

type LogoutInput struct {
	SessionID string `validate:"required"`
}

// Logout destroys the server-side session. A provider token, if present, is
// revoked best-effort in the background; logout never fails on revocation.
func (s *Usecase) Logout(ctx context.Context, in LogoutInput) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	sess, err := s.repoSession.Get(ctx, in.SessionID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load session state", "error", err)
		return goerror.NewServer(err)
	}

	if token := sess.OAuthToken; token != "" {
		s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
			if err := s.idp.Revoke(ctx, token); err != nil {
				slog.WarnContext(ctx, "failed to revoke provider token", "error", err)
			}
			return nil
		})
	}

	if err := s.repoSession.Delete(ctx, in.SessionID); err != nil {
		slog.ErrorContext(ctx, "failed to delete session state", "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
