package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
	"github.com/shandysiswandi/authgate/internal/pkg/jwt"
)

type ProfileOutput struct {
	AccountID int64
	Email     string
	FullName  string
}

// Profile returns the authenticated identity from the verified token,
// enriched with the account row when one exists (federated sign-ins may not
// have one).
func (s *Usecase) Profile(ctx context.Context) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	out := &ProfileOutput{
		AccountID: clm.AccountID,
		Email:     clm.Email,
	}

	acct, err := s.repoDB.GetAccountByEmail(ctx, clm.Email)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", clm.Email, "error", err)
		return nil, goerror.NewServer(err)
	}
	if acct != nil {
		out.FullName = acct.FullName
	}

	return out, nil
}
