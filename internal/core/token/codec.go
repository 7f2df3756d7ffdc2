// Package token reads the claimed expiry out of a compact signed token.
//
// Nothing here verifies a signature. The backend is the only party that
// verifies tokens; this codec exists purely to schedule refreshes, and its
// output must never feed an authorization decision.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var parser = jwt.NewParser(jwt.WithoutClaimsValidation())

// ExpiryOf decodes the payload segment of raw and returns its expiry claim.
// A malformed token, an undecodable payload or a missing claim all return
// ok=false ("expiry unknown"); callers must not assume liveness in that case.
func ExpiryOf(raw string) (expiry time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
