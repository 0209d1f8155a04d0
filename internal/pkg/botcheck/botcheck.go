package botcheck

import "context"

// Verifier checks a client-submitted anti-bot challenge token.
type Verifier interface {
	// Verify reports whether the token passes the challenge. remoteIP is the
	// client address and may be empty. A non-nil error means the provider
	// could not be reached; callers decide how to treat that.
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}
