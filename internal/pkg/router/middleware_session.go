package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/shandysiswandi/authgate/internal/pkg/config"
	"github.com/shandysiswandi/authgate/internal/pkg/uid"
)

// DefaultSessionCookie is used when no cookie name is configured.
const DefaultSessionCookie = "ag_session"

type sessionIDKey struct{}

// GetSessionID returns the browser session identifier stored in the context.
func GetSessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionIDKey{}).(string)
	return sid
}

// SetSessionID stores the browser session identifier in the context. Exposed
// for tests that exercise handlers without the middleware chain.
func SetSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sid)
}

func normalizeSessionID(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.ContainsAny(v, "\r\n;") {
		return ""
	}
	const maxLen = 64
	if len(v) > maxLen {
		return ""
	}
	return v
}

// middlewareSession guarantees every request carries a session identifier.
//
// The identifier is an opaque random value in a cookie; all verification
// state lives server-side keyed by it.
func middlewareSession(cfg config.Config, uid uid.StringID) Middleware {
	name := DefaultSessionCookie
	secure := false
	if cfg != nil {
		if v := strings.TrimSpace(cfg.GetString("session.cookie_name")); v != "" {
			name = v
		}
		secure = cfg.GetBool("session.cookie_secure")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sid string
			if c, err := r.Cookie(name); err == nil {
				sid = normalizeSessionID(c.Value)
			}

			if sid == "" && uid != nil {
				sid = uid.Generate()
				http.SetCookie(w, &http.Cookie{
					Name:     name,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			if sid != "" {
				r = r.WithContext(SetSessionID(r.Context(), sid))
			}

			next.ServeHTTP(w, r)
		})
	}
}
