// internal/httpserver/auth.go
//
// Administrator-secret check for lobby creation and game start.
// The check lives at the boundary: handlers turn a password into a plain
// boolean capability, and the lobby core only ever sees that flag.

package httpserver

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// AdminAuth verifies the shared administrator secret.
//
// Two modes:
//   - plaintext secret (default): constant-time exact match against
//     ADMIN_PASSWORD;
//   - bcrypt mode: when ADMIN_PASSWORD_HASH is set, the supplied password
//     is verified against that hash instead, so the cleartext secret
//     never has to live in the environment.
type AdminAuth struct {
	secret string
	hash   []byte
}

// NewAdminAuth builds an authorizer. A non-empty bcryptHash takes
// precedence over the plaintext secret.
func NewAdminAuth(secret, bcryptHash string) *AdminAuth {
	a := &AdminAuth{secret: secret}
	if bcryptHash != "" {
		a.hash = []byte(bcryptHash)
	}
	return a
}

// Authorize reports whether password matches the administrator secret.
func (a *AdminAuth) Authorize(password string) bool {
	if len(a.hash) > 0 {
		return bcrypt.CompareHashAndPassword(a.hash, []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(a.secret), []byte(password)) == 1
}
