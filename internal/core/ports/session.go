package ports

import (
	"context"

	"github.com/threadline/storefront-api/internal/core/domain"
)

// BackendUser is the user object returned by the backend's credential
// exchange.
type BackendUser struct {
	ID          string      `json:"_id"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Avatar      string      `json:"avatar"`
	Address     string      `json:"address"`
	DateOfBirth string      `json:"dateOfBirth"`
	IsVerified  bool        `json:"isVerified"`
	Role        domain.Role `json:"role"`
}

// LoginResult is a successful credential exchange.
type LoginResult struct {
	User         BackendUser
	AccessToken  string
	RefreshToken string
}

// TokenPair is a successful token rotation.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthGateway is the backend's credential exchange surface.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

// SessionStore persists the live Credential per session id. Backing lifetime
// is the configured session TTL; there is no durability guarantee beyond it.
type SessionStore interface {
	Get(ctx context.Context, sid string) (*domain.Credential, error)
	// Set installs unconditionally with the generation carried by cred.
	Set(ctx context.Context, sid string, cred *domain.Credential) error
	// Swap installs only if the stored generation equals expectedGen,
	// returning domain.ErrStaleGeneration otherwise.
	Swap(ctx context.Context, sid string, expectedGen uint64, cred *domain.Credential) error
	Delete(ctx context.Context, sid string) error
}

// Authorizer is the per-session view the backend client uses to authorize
// outgoing requests. Token reads the current access token fresh on every
// call, refreshing lazily; Invalidate tears the session down.
type Authorizer interface {
	Token(ctx context.Context) (string, error)
	Invalidate(ctx context.Context) error
}

// SessionService owns the credential lifecycle: issue, resume (with lazy
// refresh), profile update, and teardown.
type SessionService interface {
	Login(ctx context.Context, email, password string) (sid string, cred *domain.Credential, err error)
	Resume(ctx context.Context, sid string) (*domain.Credential, error)
	Update(ctx context.Context, sid string, profile domain.Profile) (*domain.Credential, error)
	Logout(ctx context.Context, sid string) error
	Authorizer(sid string) Authorizer
}
