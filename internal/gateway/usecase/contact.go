package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

type ContactInput struct {
	Name    string `validate:"required,min=2,max=100"`
	Email   string `validate:"required,email"`
	Message string `validate:"required,max=2000"`
}

// Contact relays a free-text message to the site inbox through the same
// sender that delivers passcodes.
func (s *Usecase) Contact(ctx context.Context, in ContactInput) error {
	ctx, span := s.startSpan(ctx, "Contact")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	inbox := s.cfg.GetString("contact.inbox")
	body := fmt.Sprintf("From: %s <%s>\n\n%s", in.Name, in.Email, in.Message)

	if err := s.sender.Send(ctx, inbox, "New contact message", body); err != nil {
		slog.ErrorContext(ctx, "failed to relay contact message", "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
