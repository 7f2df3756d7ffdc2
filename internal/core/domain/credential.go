package domain

import "time"

// Role is the closed set of roles the backend assigns to users.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleUser       Role = "user"
)

// RefreshAccessTokenError is the sentinel stored on a Credential whose
// refresh exchange failed. The session keeps its stale tokens but is
// unusable until a full re-login.
const RefreshAccessTokenError = "RefreshAccessTokenError"

// Credential is the authenticated identity plus its proof material: the
// access/refresh token pair issued by the backend and the expiry instant
// derived from the access token. At most one Credential is live per session.
type Credential struct {
	UserID      string `json:"id"`
	Name        string `json:"name"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	Address     string `json:"address,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	IsVerified  bool   `json:"isVerified"`
	Role        Role   `json:"role"`

	AccessToken  string `json:"-"`
	RefreshToken string `json:"-"`

	// AccessTokenExpires is derived by decoding the current access token.
	// Zero means the expiry could not be determined; such a session is
	// treated as fresh until a request fails.
	AccessTokenExpires time.Time `json:"-"`

	// Error is empty or RefreshAccessTokenError.
	Error string `json:"error,omitempty"`

	// Generation increments on every token rotation. Installs into the
	// session store are compare-and-swap on this counter so a superseded
	// refresh response cannot overwrite a newer credential.
	Generation uint64 `json:"-"`
}

// Expired reports whether the access token's expiry has passed. An unknown
// expiry never reports expired.
func (c *Credential) Expired(now time.Time) bool {
	return !c.AccessTokenExpires.IsZero() && !now.Before(c.AccessTokenExpires)
}

// Invalid reports whether the credential has been flagged unusable by a
// failed refresh. Terminal until the next successful login.
func (c *Credential) Invalid() bool {
	return c.Error != ""
}

// Profile carries the user-editable identity fields applied by the session
// update trigger. Tokens and expiry are never touched by a profile update.
type Profile struct {
	Name        string `json:"name"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Avatar      string `json:"avatar"`
	Address     string `json:"address"`
	DateOfBirth string `json:"dateOfBirth"`
	IsVerified  bool   `json:"isVerified"`
}
