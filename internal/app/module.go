package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/authgate/internal/gateway"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.gateway.enabled") {
		if err := gateway.New(gateway.Dependency{
			DBConn:     a.dbConn,
			CacheConn:  a.cacheConn,
			Goroutine:  a.goroutine,
			Router:     a.router,
			Mail:       a.mail,
			BotCheck:   a.botCheck,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			UUID:       a.uuid,
			HMAC:       a.hmac,
			Bcrypt:     a.bcrypt,
			Clock:      a.clock,
			Validator:  a.validator,
			JWT:        a.jwt,
		}); err != nil {
			slog.Error("failed to init module gateway", "error", err)
			os.Exit(1)
		}
	}
}
