package challenge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shandysiswandi/authgate/internal/gateway/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/clock"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
	"github.com/shandysiswandi/authgate/internal/pkg/hash"
	"github.com/shandysiswandi/authgate/internal/pkg/passcode"
)

// Result is the outcome of validating a submitted code.
type Result int

const (
	// ResultSuccess means the code matched before expiry; the challenge is cleared.
	ResultSuccess Result = iota
	// ResultMismatch means the code did not match; stored state is untouched.
	ResultMismatch
	// ResultExpired means the validity window elapsed, regardless of the code.
	ResultExpired
	// ResultAbsent means no challenge was ever issued for the flow.
	ResultAbsent
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultMismatch:
		return "mismatch"
	case ResultExpired:
		return "expired"
	case ResultAbsent:
		return "absent"
	default:
		return "unknown"
	}
}

// Sender delivers a passcode notification to an address.
type Sender interface {
	Send(ctx context.Context, address, subject, body string) error
}

// Engine governs issuance, resend, validation, and expiry of challenges.
//
// It mutates session state in memory only; persisting the session afterwards
// is the caller's responsibility.
type Engine struct {
	codes  passcode.Generator
	hasher hash.Hash
	sender Sender
	clock  clock.Clocker
	ttl    time.Duration
}

// Config holds the engine's dependencies.
type Config struct {
	Codes  passcode.Generator
	Hasher hash.Hash
	Sender Sender
	Clock  clock.Clocker
	// TTL is the validity window applied to every issued challenge.
	TTL time.Duration
}

// DefaultTTL applies when Config.TTL is not positive.
const DefaultTTL = 30 * time.Second

// NewEngine constructs an Engine.
func NewEngine(cfg Config) *Engine {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Engine{
		codes:  cfg.Codes,
		hasher: cfg.Hasher,
		sender: cfg.Sender,
		clock:  cfg.Clock,
		ttl:    ttl,
	}
}

// TTL returns the validity window applied to issued challenges.
func (e *Engine) TTL() time.Duration {
	return e.ttl
}

// Issue generates a fresh code, delivers it to address, and records the
// challenge on the session, overwriting any prior one for the flow.
//
// Delivery failure leaves the stored state untouched so a failed send can
// never be mistaken for an issued challenge.
func (e *Engine) Issue(ctx context.Context, sess *entity.Session, flow entity.Flow, address string) error {
	code, err := e.codes.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate passcode", "flow", flow, "error", err)
		return goerror.NewServer(err)
	}

	if err := e.sender.Send(ctx, address, subjectFor(flow), e.body(code)); err != nil {
		slog.ErrorContext(ctx, "failed to deliver passcode", "flow", flow, "address", address, "error", err)
		return goerror.NewServer(err)
	}

	digest, err := e.hasher.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash passcode", "flow", flow, "error", err)
		return goerror.NewServer(err)
	}

	sess.SetChallenge(flow, entity.Challenge{
		CodeHash: string(digest),
		IssuedAt: e.clock.Now(),
		TTL:      e.ttl,
		Address:  address,
		Sent:     true,
	})

	return nil
}

// ShouldIssue reports whether a fresh challenge is needed: no challenge yet,
// the delivery never fired, the existing one expired, or the caller asked for
// a resend. A pending unexpired challenge suppresses duplicate dispatch when
// near-simultaneous requests race.
func (e *Engine) ShouldIssue(sess *entity.Session, flow entity.Flow, resend bool) bool {
	if resend {
		return true
	}

	ch, ok := sess.Challenge(flow)
	if !ok || !ch.Sent {
		return true
	}

	return ch.Expired(e.clock.Now())
}

// Validate checks a submitted code against the stored challenge.
//
// Expiry wins over mismatch: a correct code past the window still reports
// ResultExpired. Only ResultSuccess mutates the session, clearing the
// challenge so the code cannot be replayed.
func (e *Engine) Validate(sess *entity.Session, flow entity.Flow, submitted string) Result {
	ch, ok := sess.Challenge(flow)
	if !ok {
		return ResultAbsent
	}

	if ch.Expired(e.clock.Now()) {
		return ResultExpired
	}

	if !e.hasher.Verify(ch.CodeHash, submitted) {
		return ResultMismatch
	}

	sess.ClearChallenge(flow)

	return ResultSuccess
}

func (e *Engine) body(code string) string {
	return fmt.Sprintf("Your verification code is %s. It expires in %d seconds.",
		code, int(e.ttl.Seconds()))
}

func subjectFor(flow entity.Flow) string {
	switch flow {
	case entity.FlowLogin:
		return "Your login code"
	case entity.FlowRegister:
		return "Confirm your email address"
	case entity.FlowRecover:
		return "Your password recovery code"
	default:
		return "Your verification code"
	}
}
