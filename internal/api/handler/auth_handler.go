package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threadline/storefront-api/internal/api/metrics"
	"github.com/threadline/storefront-api/internal/api/middleware"
	"github.com/threadline/storefront-api/internal/core/domain"
	"github.com/threadline/storefront-api/internal/core/ports"
)

// AuthHandler owns the session endpoints: issue, read, update, teardown.
type AuthHandler struct {
	sessions   ports.SessionService
	cookieName string
	maxAge     int
	secure     bool
}

func NewAuthHandler(sessions ports.SessionService, cookieName string, maxAgeSeconds int, secure bool) *AuthHandler {
	return &AuthHandler{
		sessions:   sessions,
		cookieName: cookieName,
		maxAge:     maxAgeSeconds,
		secure:     secure,
	}
}

// Login exchanges email and password for a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	// Empty fields are the service's concern: it must reject them locally
	// without a network call.
	sid, cred, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	middleware.SetCookie(c, h.cookieName, sid, h.maxAge, h.secure)
	return c.JSON(http.StatusOK, newSessionResponse(cred))
}

// Logout tears the session down.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.sessions.Logout(c.Request().Context(), sid); err != nil {
		return err
	}
	metrics.SignoutsTotal.WithLabelValues("logout").Inc()
	middleware.ClearCookie(c, h.cookieName, h.secure)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// Session returns the accessor view of the current session: identity, role,
// expiry and error flag. Tokens never leave the server.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	_, cred, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSessionResponse(cred))
}

// Update applies the profile-edit trigger: identity fields refresh without a
// new login and without touching the token pair.
//
// @Summary      Update session profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "Profile fields"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/session [patch]
func (h *AuthHandler) Update(c echo.Context) error {
	sid, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cred, err := h.sessions.Update(c.Request().Context(), sid, domain.Profile{
		Name:        req.Name,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Avatar:      req.Avatar,
		Address:     req.Address,
		DateOfBirth: req.DateOfBirth,
		IsVerified:  req.IsVerified,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newSessionResponse(cred))
}
