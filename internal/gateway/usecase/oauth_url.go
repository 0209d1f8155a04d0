package usecase

import (
	"context"

	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

type OAuthURLInput struct {
	SessionID string `validate:"required"`
}

type OAuthURLOutput struct {
	URL string
}

// OAuthURL stores an anti-forgery state nonce in the session and returns the
// provider's authorization URL.
func (s *Usecase) OAuthURL(ctx context.Context, in OAuthURLInput) (*OAuthURLOutput, error) {
	ctx, span := s.startSpan(ctx, "OAuthURL")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	sess, err := s.loadSession(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	state := s.uuid.Generate()
	sess.OAuthState = state

	if err := s.saveSession(ctx, sess); err != nil {
		return nil, err
	}

	return &OAuthURLOutput{URL: s.idp.AuthorizeURL(state)}, nil
}
