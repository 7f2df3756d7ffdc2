package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threadline/storefront-api/internal/api/metrics"
	"github.com/threadline/storefront-api/internal/core/domain"
	"github.com/threadline/storefront-api/internal/core/ports"
)

// Context keys set by the Session middleware.
const (
	CtxCredential = "credential"
	CtxSessionID  = "session_id"
)

// SessionConfig wires the Session middleware.
type SessionConfig struct {
	Sessions   ports.SessionService
	CookieName string
	Secure     bool
}

// Session resolves the session cookie to a live Credential on every request —
// read fresh, never cached across requests. Resume refreshes lazily; a
// credential flagged by a failed refresh is proactively torn down here
// instead of authorizing a request doomed to fail.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cfg.CookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			sid := cookie.Value

			cred, err := cfg.Sessions.Resume(c.Request().Context(), sid)
			if errors.Is(err, domain.ErrSessionNotFound) {
				ClearCookie(c, cfg.CookieName, cfg.Secure)
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}
			if err != nil {
				return err
			}

			if cred.Invalid() {
				metrics.SignoutsTotal.WithLabelValues("refresh_failed").Inc()
				_ = cfg.Sessions.Logout(c.Request().Context(), sid)
				ClearCookie(c, cfg.CookieName, cfg.Secure)
				return echo.NewHTTPError(http.StatusUnauthorized, domain.RefreshAccessTokenError)
			}

			c.Set(CtxCredential, cred)
			c.Set(CtxSessionID, sid)
			return next(c)
		}
	}
}

// ClearCookie expires the session cookie on the client.
func ClearCookie(c echo.Context, name string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SetCookie installs the session cookie after a successful login.
func SetCookie(c echo.Context, name, sid string, maxAgeSeconds int, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    sid,
		Path:     "/",
		MaxAge:   maxAgeSeconds,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
