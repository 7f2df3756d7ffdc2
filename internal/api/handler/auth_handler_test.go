package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/threadline/storefront-api/internal/api/middleware"
	"github.com/threadline/storefront-api/internal/core/domain"
	"github.com/threadline/storefront-api/internal/core/ports"
)

type stubSessions struct {
	sid        string
	cred       *domain.Credential
	loginErr   error
	updated    *domain.Profile
	logoutSIDs []string
}

func (s *stubSessions) Login(_ context.Context, email, password string) (string, *domain.Credential, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.sid, s.cred, nil
}

func (s *stubSessions) Resume(context.Context, string) (*domain.Credential, error) {
	return s.cred, nil
}

func (s *stubSessions) Update(_ context.Context, _ string, profile domain.Profile) (*domain.Credential, error) {
	s.updated = &profile
	next := *s.cred
	next.Name = profile.Name
	next.Email = profile.Email
	return &next, nil
}

func (s *stubSessions) Logout(_ context.Context, sid string) error {
	s.logoutSIDs = append(s.logoutSIDs, sid)
	return nil
}

func (s *stubSessions) Authorizer(string) ports.Authorizer { return nil }

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withSession(c echo.Context, sid string, cred *domain.Credential) {
	c.Set(middleware.CtxSessionID, sid)
	c.Set(middleware.CtxCredential, cred)
}

func testSessionCredential() *domain.Credential {
	return &domain.Credential{
		UserID:             "u1",
		Name:               "Ada Lovelace",
		Email:              "ada@example.com",
		Role:               domain.RoleUser,
		AccessToken:        "access-1",
		RefreshToken:       "refresh-1",
		AccessTokenExpires: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestAuthHandler_Login_SetsCookieAndHidesTokens(t *testing.T) {
	sessions := &stubSessions{sid: "s1", cred: testSessionCredential()}
	h := NewAuthHandler(sessions, "storefront_session", 3600, false)

	e := newEcho()
	c, rec := jsonContext(e, http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"pass"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "storefront_session" || cookies[0].Value != "s1" {
		t.Fatalf("session cookie not set: %v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}

	body := rec.Body.String()
	if strings.Contains(body, "access-1") || strings.Contains(body, "refresh-1") {
		t.Fatalf("tokens leaked into the response: %s", body)
	}

	var resp struct {
		User    map[string]any `json:"user"`
		Expires string         `json:"expires"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.User["name"] != "Ada Lovelace" {
		t.Fatalf("unexpected user payload: %v", resp.User)
	}
	if resp.Expires != "2026-01-02T03:04:05Z" {
		t.Fatalf("unexpected expires %q", resp.Expires)
	}
}

func TestAuthHandler_Login_ServiceErrorPropagates(t *testing.T) {
	sessions := &stubSessions{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(sessions, "storefront_session", 3600, false)

	e := newEcho()
	c, rec := jsonContext(e, http.MethodPost, "/auth/login", `{"email":"a@b.c","password":"x"}`)

	err := h.Login(c)
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("failed login must not set a cookie")
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	sessions := &stubSessions{cred: testSessionCredential()}
	h := NewAuthHandler(sessions, "storefront_session", 3600, false)

	e := newEcho()
	c, rec := jsonContext(e, http.MethodPost, "/auth/logout", "")
	withSession(c, "s1", sessions.cred)

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if len(sessions.logoutSIDs) != 1 || sessions.logoutSIDs[0] != "s1" {
		t.Fatalf("session not deleted: %v", sessions.logoutSIDs)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("expected an expiring cookie, got %v", cookies)
	}
}

func TestAuthHandler_Session_RequiresMiddleware(t *testing.T) {
	h := NewAuthHandler(&stubSessions{}, "storefront_session", 3600, false)

	e := newEcho()
	c, _ := jsonContext(e, http.MethodGet, "/auth/session", "")

	err := h.Session(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Update(t *testing.T) {
	sessions := &stubSessions{cred: testSessionCredential()}
	h := NewAuthHandler(sessions, "storefront_session", 3600, false)

	e := newEcho()
	c, rec := jsonContext(e, http.MethodPatch, "/auth/session",
		`{"name":"Ada King","firstName":"Ada","lastName":"King","email":"ada@example.com"}`)
	withSession(c, "s1", sessions.cred)

	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if sessions.updated == nil || sessions.updated.Name != "Ada King" {
		t.Fatalf("profile not forwarded: %+v", sessions.updated)
	}
}

func TestAuthHandler_Update_Validation(t *testing.T) {
	sessions := &stubSessions{cred: testSessionCredential()}
	h := NewAuthHandler(sessions, "storefront_session", 3600, false)

	e := newEcho()
	c, _ := jsonContext(e, http.MethodPatch, "/auth/session", `{"name":"Ada King","email":"not-an-email"}`)
	withSession(c, "s1", sessions.cred)

	err := h.Update(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if sessions.updated != nil {
		t.Fatalf("invalid payload must not reach the service")
	}
}
