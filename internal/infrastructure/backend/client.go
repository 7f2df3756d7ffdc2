// Package backend is the typed HTTP client for the upstream storefront API.
// All business logic (pricing, inventory, order state, credential
// verification) lives upstream; this client only shapes requests, attaches
// the session's access token, and maps failure statuses onto the domain
// error taxonomy.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/threadline/storefront-api/internal/api/metrics"
	"github.com/threadline/storefront-api/internal/core/domain"
	"github.com/threadline/storefront-api/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Config captures the settings for the upstream API client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the upstream API. Safe for concurrent use.
type Client struct {
	base *url.URL
	http *http.Client
	log  zerolog.Logger
}

// New validates the base URL and returns a ready Client.
func New(cfg Config, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("backend base url: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}, nil
}

// do performs one request and decodes the response envelope. The token, when
// non-empty, is attached verbatim as the authorization header — the upstream
// API expects the raw string, no "Bearer " prefix.
func (c *Client) do(ctx context.Context, endpoint, method, path string, query url.Values, body any, token string) (*domain.Envelope, int, error) {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode %s request: %w", endpoint, err)
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), payload)
	if err != nil {
		return nil, 0, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("authorization", token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(endpoint, "error").Observe(time.Since(start).Seconds())
		return nil, 0, fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	metrics.BackendRequestDuration.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	var env domain.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return &env, resp.StatusCode, nil
}

// doAuthorized wraps do with the session authorization policy: the token is
// read fresh at request-build time, a flagged session is torn down without
// sending the request, and a 401 earns exactly one retry with a re-read
// token before the session is torn down.
func (c *Client) doAuthorized(ctx context.Context, auth ports.Authorizer, endpoint, method, path string, query url.Values, body any) (*domain.Envelope, error) {
	tok, err := auth.Token(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrRefreshAccessToken) {
			_ = auth.Invalidate(ctx)
		}
		return nil, err
	}

	env, status, err := c.do(ctx, endpoint, method, path, query, body, tok)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized {
		tok, err = auth.Token(ctx)
		if err != nil || tok == "" {
			_ = auth.Invalidate(ctx)
			return nil, domain.ErrUnauthorized
		}
		env, status, err = c.do(ctx, endpoint, method, path, query, body, tok)
		if err != nil {
			return nil, err
		}
		if status == http.StatusUnauthorized {
			_ = auth.Invalidate(ctx)
			return nil, domain.ErrUnauthorized
		}
	}

	return resolve(env, status)
}

// doPublic wraps do for unauthenticated endpoints.
func (c *Client) doPublic(ctx context.Context, endpoint, method, path string, query url.Values, body any) (*domain.Envelope, error) {
	env, status, err := c.do(ctx, endpoint, method, path, query, body, "")
	if err != nil {
		return nil, err
	}
	return resolve(env, status)
}

// resolve maps terminal statuses onto the domain taxonomy, carrying the
// backend's own message for the handler to surface.
func resolve(env *domain.Envelope, status int) (*domain.Envelope, error) {
	switch status {
	case http.StatusForbidden:
		return nil, &domain.BackendError{Sentinel: domain.ErrForbidden, Message: env.Message}
	case http.StatusNotFound:
		return nil, &domain.BackendError{Sentinel: domain.ErrNotFound, Message: env.Message}
	}
	if status < 200 || status > 299 || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("backend returned status %d", status)
		}
		return nil, errors.New(msg)
	}
	return env, nil
}
