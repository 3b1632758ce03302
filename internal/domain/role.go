package domain

import (
	"slices"
	"time"
)

// Role is the access tier granted by a shared secret.
// There is no per-user identity behind a role.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleParticipant Role = "PARTICIPANT"
	RoleViewer      Role = "VIEWER"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleParticipant, RoleViewer:
		return true
	}
	return false
}

// In reports whether r is a member of allowed.
func (r Role) In(allowed []Role) bool {
	return slices.Contains(allowed, r)
}

// Session is the explicit value carried for an authenticated client.
// ID identifies the issued token so it can be revoked on logout.
type Session struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
