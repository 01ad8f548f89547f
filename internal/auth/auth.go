// Package auth verifies the caller identity digest carried in the method
// envelope. Admin callers are keyed to the current wall-clock hour; regular
// callers to their account and login.
package auth

import (
	"crypto/sha512"
	"encoding/hex"
	"time"

	"github.com/scorepoint/scoring-gateway/internal/config"
	"github.com/scorepoint/scoring-gateway/internal/request"
)

const hourLayout = "2006010215"

type Guard struct {
	salt       string
	adminSalt  string
	adminLogin string

	// Now is overridable for tests; zero means time.Now.
	Now func() time.Time
}

func NewGuard(cfg config.AuthConfig) *Guard {
	return &Guard{
		salt:       cfg.Salt,
		adminSalt:  cfg.AdminSalt,
		adminLogin: cfg.AdminLogin,
	}
}

// IsAdmin reports whether the envelope names the admin login.
func (g *Guard) IsAdmin(env *request.Envelope) bool {
	return env.Login == g.adminLogin
}

// Check verifies the envelope token against the expected digest. It never
// errors; a false return is translated into a FORBIDDEN outcome upstream.
func (g *Guard) Check(env *request.Envelope) bool {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	var digest string
	if g.IsAdmin(env) {
		digest = Digest(now().Format(hourLayout) + g.adminSalt)
	} else {
		digest = Digest(env.Account + env.Login + g.salt)
	}
	return digest == env.Token
}

// Digest returns the hex form of the sha512 hash of s.
func Digest(s string) string {
	sum := sha512.Sum512([]byte(s))
	return hex.EncodeToString(sum[:])
}
