package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/authgate/internal/gateway/challenge"
	"github.com/shandysiswandi/authgate/internal/gateway/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/botcheck"
	"github.com/shandysiswandi/authgate/internal/pkg/clock"
	"github.com/shandysiswandi/authgate/internal/pkg/config"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
	"github.com/shandysiswandi/authgate/internal/pkg/goroutine"
	"github.com/shandysiswandi/authgate/internal/pkg/hash"
	"github.com/shandysiswandi/authgate/internal/pkg/instrument"
	"github.com/shandysiswandi/authgate/internal/pkg/jwt"
	"github.com/shandysiswandi/authgate/internal/pkg/uid"
	"github.com/shandysiswandi/authgate/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// User-facing messages. Unknown email and wrong password share one message so
// the login endpoint does not leak which emails are registered.
const (
	msgInvalidCredentials = "Invalid email or password"
	msgBotCheckFailed     = "We could not verify this request came from a human"
	msgCodeExpired        = "Your verification code has expired, please request a new one"
	msgCodeIncorrect      = "Incorrect verification code"
	msgEmailTaken         = "Email is already registered"
	msgResetNotAllowed    = "Email ownership has not been verified"
	msgNothingInProgress  = "No verification is in progress"
)

type repoDB interface {
	GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateAccount(ctx context.Context, acct entity.Account) error
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

type repoSession interface {
	Get(ctx context.Context, id string) (*entity.Session, error)
	Save(ctx context.Context, sess *entity.Session) error
	Delete(ctx context.Context, id string) error
}

type identityProvider interface {
	AuthorizeURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
	FetchProfile(ctx context.Context, accessToken string) (*entity.Profile, error)
	Revoke(ctx context.Context, accessToken string) error
}

type Usecase struct {
	repoDB      repoDB
	repoSession repoSession
	idp         identityProvider
	engine      *challenge.Engine
	botCheck    botcheck.Verifier
	sender      challenge.Sender
	validator   validator.Validator
	cfg         config.Config
	bcrypt      hash.Hash
	uid         uid.NumberID
	uuid        uid.StringID
	clock       clock.Clocker
	jwt         jwt.JWT
	ins         instrument.Instrumentation
	goroutine   *goroutine.Manager
}

type Dependency struct {
	RepoDB      repoDB
	RepoSession repoSession
	IDP         identityProvider
	Engine      *challenge.Engine
	BotCheck    botcheck.Verifier
	Sender      challenge.Sender
	Validator   validator.Validator
	Config      config.Config
	Bcrypt      hash.Hash
	UID         uid.NumberID
	UUID        uid.StringID
	Clock       clock.Clocker
	JWT         jwt.JWT
	Instrument  instrument.Instrumentation
	Goroutine   *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:      dep.RepoDB,
		repoSession: dep.RepoSession,
		idp:         dep.IDP,
		engine:      dep.Engine,
		botCheck:    dep.BotCheck,
		sender:      dep.Sender,
		validator:   dep.Validator,
		cfg:         dep.Config,
		bcrypt:      dep.Bcrypt,
		uid:         dep.UID,
		uuid:        dep.UUID,
		clock:       dep.Clock,
		jwt:         dep.JWT,
		ins:         dep.Instrument,
		goroutine:   dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("gateway.usecase").Start(ctx, name)
}

// loadSession fetches the server-side session for the cookie value, returning
// a fresh empty one when nothing is stored yet.
func (s *Usecase) loadSession(ctx context.Context, id string) (*entity.Session, error) {
	if strings.TrimSpace(id) == "" {
		return nil, goerror.NewBusiness("Session is missing", goerror.CodeUnauthorized)
	}

	sess, err := s.repoSession.Get(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return entity.NewSession(id), nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to load session state", "error", err)
		return nil, goerror.NewServer(err)
	}

	return sess, nil
}

func (s *Usecase) saveSession(ctx context.Context, sess *entity.Session) error {
	if err := s.repoSession.Save(ctx, sess); err != nil {
		slog.ErrorContext(ctx, "failed to save session state", "error", err)
		return goerror.NewServer(err)
	}
	return nil
}

// challengeOutcome maps a validation result to the user-facing error surface.
// Absent is reported to the user exactly like Expired but logged distinctly.
func (s *Usecase) challengeOutcome(ctx context.Context, flow entity.Flow, res challenge.Result) error {
	switch res {
	case challenge.ResultSuccess:
		return nil

	case challenge.ResultMismatch:
		slog.WarnContext(ctx, "submitted code did not match", "flow", flow)
		return goerror.NewBusiness(msgCodeIncorrect, goerror.CodeUnauthorized)

	case challenge.ResultExpired:
		slog.WarnContext(ctx, "challenge expired", "flow", flow)
		return goerror.NewBusiness(msgCodeExpired, goerror.CodeUnauthorized)

	case challenge.ResultAbsent:
		slog.WarnContext(ctx, "no challenge was ever issued", "flow", flow)
		return goerror.NewBusiness(msgCodeExpired, goerror.CodeUnauthorized)

	default:
		return goerror.NewServer(errors.New("unknown challenge result"))
	}
}

// reissue implements the shared resend behavior: issuance is unconditional,
// bypassing the staleness check, and no submitted code is evaluated.
func (s *Usecase) reissue(ctx context.Context, sessionID string, flow entity.Flow) error {
	sess, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return err
	}

	var address string
	switch flow {
	case entity.FlowLogin:
		address = sess.LoginEmail
	case entity.FlowRegister:
		if sess.Pending != nil {
			address = sess.Pending.Email
		}
	case entity.FlowRecover:
		address = sess.VerifyEmail
	}

	if address == "" {
		slog.WarnContext(ctx, "resend requested with no flow in progress", "flow", flow)
		return goerror.NewBusiness(msgNothingInProgress, goerror.CodeUnauthorized)
	}

	if err := s.engine.Issue(ctx, sess, flow, address); err != nil {
		return err
	}

	return s.saveSession(ctx, sess)
}
