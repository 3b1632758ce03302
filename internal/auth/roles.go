// Package auth resolves shared secrets to roles, issues and verifies the
// session tokens clients keep between visits, and decides which fields a
// role may see.
//
// There is no per-user identity: anyone holding a secret gets its role.
package auth

import (
	"crypto/subtle"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Secrets maps each role to its shared secret.
type Secrets struct {
	Admin       string
	Participant string
	Viewer      string
}

// Resolver maps exactly three known secrets to the three roles.
type Resolver struct {
	entries []entry
}

type entry struct {
	secret []byte
	role   domain.Role
}

// NewResolver builds a Resolver from the configured secrets. Empty secrets
// are skipped so a role can be disabled.
func NewResolver(s Secrets) *Resolver {
	r := &Resolver{}
	for _, e := range []entry{
		{[]byte(s.Admin), domain.RoleAdmin},
		{[]byte(s.Participant), domain.RoleParticipant},
		{[]byte(s.Viewer), domain.RoleViewer},
	} {
		if len(e.secret) > 0 {
			r.entries = append(r.entries, e)
		}
	}
	return r
}

// Resolve returns the role for secret. An unknown secret yields false and
// no error; the caller shows an "incorrect password" prompt.
func (r *Resolver) Resolve(secret string) (domain.Role, bool) {
	in := []byte(secret)
	var matched domain.Role
	for _, e := range r.entries {
		if subtle.ConstantTimeCompare(in, e.secret) == 1 && matched == "" {
			matched = e.role
		}
	}
	return matched, matched != ""
}
