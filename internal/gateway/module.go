package gateway

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/authgate/internal/gateway/challenge"
	"github.com/shandysiswandi/authgate/internal/gateway/inbound"
	"github.com/shandysiswandi/authgate/internal/gateway/outbound/db"
	"github.com/shandysiswandi/authgate/internal/gateway/outbound/idp"
	"github.com/shandysiswandi/authgate/internal/gateway/outbound/mailer"
	"github.com/shandysiswandi/authgate/internal/gateway/outbound/session"
	"github.com/shandysiswandi/authgate/internal/gateway/usecase"
	"github.com/shandysiswandi/authgate/internal/pkg/botcheck"
	"github.com/shandysiswandi/authgate/internal/pkg/clock"
	"github.com/shandysiswandi/authgate/internal/pkg/config"
	"github.com/shandysiswandi/authgate/internal/pkg/goroutine"
	"github.com/shandysiswandi/authgate/internal/pkg/hash"
	"github.com/shandysiswandi/authgate/internal/pkg/instrument"
	"github.com/shandysiswandi/authgate/internal/pkg/jwt"
	"github.com/shandysiswandi/authgate/internal/pkg/mail"
	"github.com/shandysiswandi/authgate/internal/pkg/passcode"
	"github.com/shandysiswandi/authgate/internal/pkg/router"
	"github.com/shandysiswandi/authgate/internal/pkg/uid"
	"github.com/shandysiswandi/authgate/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	CacheConn  *redis.Client              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	BotCheck   botcheck.Verifier          `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	HMAC       hash.Hash                  `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	sender := mailer.New(dep.Mail, dep.Config.GetString("mail.from"))

	engine := challenge.NewEngine(challenge.Config{
		Codes:  passcode.NewNumeric(dep.Config.GetInt("modules.gateway.otp_length")),
		Hasher: dep.HMAC,
		Sender: sender,
		Clock:  dep.Clock,
		TTL:    dep.Config.GetSecond("modules.gateway.otp_ttl_seconds"),
	})

	google := idp.NewGoogle(idp.GoogleConfig{
		ClientID:     dep.Config.GetString("oauth.google.client_id"),
		ClientSecret: dep.Config.GetString("oauth.google.client_secret"),
		RedirectURL:  dep.Config.GetString("oauth.google.redirect_url"),
	})

	uc := usecase.New(usecase.Dependency{
		RepoDB:      db.NewDB(dep.DBConn, dep.Instrument),
		RepoSession: session.NewStore(dep.CacheConn, dep.Instrument, dep.Config.GetMinute("session.ttl_minutes")),
		IDP:         google,
		Engine:      engine,
		BotCheck:    dep.BotCheck,
		Sender:      sender,
		Validator:   dep.Validator,
		Config:      dep.Config,
		Bcrypt:      dep.Bcrypt,
		UID:         dep.UID,
		UUID:        dep.UUID,
		Clock:       dep.Clock,
		JWT:         dep.JWT,
		Instrument:  dep.Instrument,
		Goroutine:   dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
