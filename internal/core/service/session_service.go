package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/threadline/storefront-api/internal/api/metrics"
	"github.com/threadline/storefront-api/internal/core/domain"
	"github.com/threadline/storefront-api/internal/core/ports"
	"github.com/threadline/storefront-api/internal/core/token"
)

// SessionService owns the credential lifecycle. Credentials are issued by the
// backend exchange, cached in the session store, refreshed lazily on read,
// and flagged (not cleared) when a refresh fails; the decision to sign the
// user out belongs to the HTTP layer.
type SessionService struct {
	store ports.SessionStore
	auth  ports.AuthGateway
	group singleflight.Group
	now   func() time.Time
	log   zerolog.Logger
}

func NewSessionService(store ports.SessionStore, auth ports.AuthGateway, log zerolog.Logger) *SessionService {
	return &SessionService{
		store: store,
		auth:  auth,
		now:   time.Now,
		log:   log,
	}
}

// Login exchanges email and password for a fresh credential pair and installs
// it under a new session id. Missing fields are rejected locally; a backend
// rejection or network failure leaves any prior session untouched.
func (s *SessionService) Login(ctx context.Context, email, password string) (string, *domain.Credential, error) {
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("missing_credentials").Inc()
		return "", nil, domain.ErrMissingCredentials
	}

	res, err := s.auth.Login(ctx, email, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		s.log.Warn().Err(err).Str("email", email).Msg("credential exchange rejected")
		return "", nil, domain.ErrInvalidCredentials
	}

	cred := &domain.Credential{
		UserID:       res.User.ID,
		Name:         res.User.FirstName + " " + res.User.LastName,
		FirstName:    res.User.FirstName,
		LastName:     res.User.LastName,
		Email:        res.User.Email,
		Phone:        res.User.Phone,
		Avatar:       res.User.Avatar,
		Address:      res.User.Address,
		DateOfBirth:  res.User.DateOfBirth,
		IsVerified:   res.User.IsVerified,
		Role:         res.User.Role,
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	}
	if exp, ok := token.ExpiryOf(res.AccessToken); ok {
		cred.AccessTokenExpires = exp
	} else {
		// Expiry unknown: the session stays fresh until a request fails.
		s.log.Warn().Str("user_id", cred.UserID).Msg("access token expiry could not be decoded")
	}

	sid := uuid.NewString()
	if err := s.store.Set(ctx, sid, cred); err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", cred.UserID).Str("role", string(cred.Role)).Msg("session issued")
	return sid, cred, nil
}

// Resume reads the session and lazily refreshes an expired access token.
// Every transition is installed with a generation compare-and-swap, and
// concurrent expired reads share a single in-flight refresh. An invalid
// credential is returned as-is for the caller to tear down.
func (s *SessionService) Resume(ctx context.Context, sid string) (*domain.Credential, error) {
	cred, err := s.store.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	if cred.Invalid() || !cred.Expired(s.now()) {
		return cred, nil
	}

	// A refresh outcome is applied even when the triggering request has
	// gone away, so waiters on the shared call never see its cancellation.
	refreshCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(sid, func() (any, error) {
		return s.refresh(refreshCtx, sid, cred)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Credential), nil
}

// refresh performs at most one exchange of the refresh token. Success rotates
// both tokens and recomputes the expiry; failure keeps the stale tokens and
// sets the RefreshAccessTokenError flag. Either outcome loses to a newer
// stored credential.
func (s *SessionService) refresh(ctx context.Context, sid string, cred *domain.Credential) (*domain.Credential, error) {
	var pair *ports.TokenPair
	err := domain.ErrRefreshAccessToken
	if cred.RefreshToken != "" {
		pair, err = s.auth.Refresh(ctx, cred.RefreshToken)
	}
	if err != nil {
		flagged := *cred
		flagged.Error = domain.RefreshAccessTokenError
		flagged.Generation = cred.Generation + 1

		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		s.log.Warn().Err(err).Str("user_id", cred.UserID).Msg("token refresh failed")

		return s.install(ctx, sid, cred.Generation, &flagged)
	}

	next := *cred
	next.AccessToken = pair.AccessToken
	next.RefreshToken = pair.RefreshToken
	next.Error = ""
	next.AccessTokenExpires = time.Time{}
	next.Generation = cred.Generation + 1
	if exp, ok := token.ExpiryOf(pair.AccessToken); ok {
		next.AccessTokenExpires = exp
	} else {
		s.log.Warn().Str("user_id", cred.UserID).Msg("refreshed access token expiry could not be decoded")
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return s.install(ctx, sid, cred.Generation, &next)
}

// install writes cred if the stored generation is still expectedGen. A stale
// write is discarded and the newer stored credential wins.
func (s *SessionService) install(ctx context.Context, sid string, expectedGen uint64, cred *domain.Credential) (*domain.Credential, error) {
	err := s.store.Swap(ctx, sid, expectedGen, cred)
	if errors.Is(err, domain.ErrStaleGeneration) {
		metrics.TokenRefreshesTotal.WithLabelValues("superseded").Inc()
		s.log.Debug().Str("user_id", cred.UserID).Msg("superseded credential install discarded")
		return s.store.Get(ctx, sid)
	}
	if err != nil {
		return nil, err
	}
	return cred, nil
}

// Update applies the profile-edit trigger: identity fields change in place,
// tokens and expiry stay as they are. Retried once if a concurrent rotation
// wins the compare-and-swap.
func (s *SessionService) Update(ctx context.Context, sid string, profile domain.Profile) (*domain.Credential, error) {
	for attempt := 0; ; attempt++ {
		cred, err := s.store.Get(ctx, sid)
		if err != nil {
			return nil, err
		}

		next := *cred
		next.Name = profile.Name
		next.FirstName = profile.FirstName
		next.LastName = profile.LastName
		next.Email = profile.Email
		next.Phone = profile.Phone
		next.Avatar = profile.Avatar
		next.Address = profile.Address
		next.DateOfBirth = profile.DateOfBirth
		next.IsVerified = profile.IsVerified
		next.Generation = cred.Generation + 1

		err = s.store.Swap(ctx, sid, cred.Generation, &next)
		if errors.Is(err, domain.ErrStaleGeneration) && attempt == 0 {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &next, nil
	}
}

// Logout tears the session down. Callers record the signout reason; the
// service does not know whether it is explicit or forced.
func (s *SessionService) Logout(ctx context.Context, sid string) error {
	return s.store.Delete(ctx, sid)
}

// Authorizer returns the per-session view used to authorize backend calls.
func (s *SessionService) Authorizer(sid string) ports.Authorizer {
	return &sessionAuthorizer{svc: s, sid: sid}
}

type sessionAuthorizer struct {
	svc *SessionService
	sid string
}

// Token reads the current access token, refreshing lazily. A session flagged
// by a failed refresh yields ErrRefreshAccessToken; the backend client reacts
// by tearing the session down instead of sending a doomed request.
func (a *sessionAuthorizer) Token(ctx context.Context) (string, error) {
	cred, err := a.svc.Resume(ctx, a.sid)
	if err != nil {
		return "", err
	}
	if cred.Invalid() {
		return "", domain.ErrRefreshAccessToken
	}
	return cred.AccessToken, nil
}

func (a *sessionAuthorizer) Invalidate(ctx context.Context) error {
	metrics.SignoutsTotal.WithLabelValues("unauthorized").Inc()
	return a.svc.store.Delete(ctx, a.sid)
}
