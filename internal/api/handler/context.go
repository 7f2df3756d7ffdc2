package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threadline/storefront-api/internal/api/middleware"
	"github.com/threadline/storefront-api/internal/core/domain"
)

// ctxSession extracts the session id and Credential injected by the Session
// middleware and fast-fails before any service call when either is absent.
func ctxSession(c echo.Context) (sid string, cred *domain.Credential, err error) {
	cred, _ = c.Get(middleware.CtxCredential).(*domain.Credential)
	sid, _ = c.Get(middleware.CtxSessionID).(string)
	if cred == nil || sid == "" {
		return "", nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return sid, cred, nil
}
