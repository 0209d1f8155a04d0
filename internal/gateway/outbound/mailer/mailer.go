// Package mailer delivers passcode and contact emails synchronously. The
// challenge flow depends on delivery succeeding before any state is stored,
// so there is no queue here, only bounded retries against the provider.
package mailer

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/authgate/internal/pkg/mail"
)

type Mailer struct {
	mail mail.Mail
	from string
}

func New(m mail.Mail, from string) *Mailer {
	return &Mailer{
		mail: m,
		from: from,
	}
}

// Send delivers one message, retrying transient provider failures with
// fibonacci backoff. The last error wins when the retries run out.
func (m *Mailer) Send(ctx context.Context, address, subject, body string) error {
	b := retry.NewFibonacci(200 * time.Millisecond)
	b = retry.WithMaxRetries(3, b)
	b = retry.WithCappedDuration(2*time.Second, b)

	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := m.mail.Send(ctx, mail.Message{
			From:     m.from,
			To:       []string{address},
			Subject:  subject,
			TextBody: body,
		})
		if err != nil {
			return retry.RetryableError(err)
		}

		return nil
	})
}
