package domain

import "errors"

var (
	// ErrMissingCredentials is raised locally before any network call when
	// the login form is missing an email or password.
	ErrMissingCredentials = errors.New("Email and password are required")

	// ErrInvalidCredentials covers a backend rejection of the credential
	// exchange as well as a network failure during it.
	ErrInvalidCredentials = errors.New("Invalid credentials! Please try again.")

	// ErrRefreshAccessToken marks a failed refresh exchange. The stale
	// tokens are kept but flagged unusable.
	ErrRefreshAccessToken = errors.New("refresh access token failed")

	// ErrUnauthorized is returned once the single 401 retry is exhausted.
	ErrUnauthorized = errors.New("unauthorized")

	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")

	// ErrSessionNotFound means the session id resolves to nothing: expired,
	// never issued, or torn down.
	ErrSessionNotFound = errors.New("session not found")

	// ErrStaleGeneration is returned by a compare-and-swap install whose
	// expected generation no longer matches the stored credential.
	ErrStaleGeneration = errors.New("credential generation is stale")

	ErrEmptyCart    = errors.New("cart is empty")
	ErrLineNotFound = errors.New("cart line not found")
	ErrPageNotFound = errors.New("page not found")
)

// BackendError carries a message returned by the upstream API alongside the
// sentinel it maps to, so handlers can surface the backend's wording.
type BackendError struct {
	Sentinel error
	Message  string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Sentinel.Error()
}

func (e *BackendError) Unwrap() error { return e.Sentinel }
