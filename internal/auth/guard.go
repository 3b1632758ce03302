package auth

import (
	"context"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Common allow-lists.
var (
	AdminOnly       = []domain.Role{domain.RoleAdmin}
	ParticipantOnly = []domain.Role{domain.RoleAdmin, domain.RoleParticipant}
	Everyone        = []domain.Role{domain.RoleAdmin, domain.RoleParticipant, domain.RoleViewer}
)

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session carried by ctx, if any.
func SessionFrom(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(domain.Session)
	return s, ok
}

// Allowed reports whether the session in ctx has one of the allowed roles.
// No session means not allowed.
func Allowed(ctx context.Context, allowed []domain.Role) bool {
	s, ok := SessionFrom(ctx)
	return ok && s.Role.In(allowed)
}

// FieldGuard returns content when the session in ctx has one of the allowed
// roles and fallback otherwise. It has no side effects and is meant to be
// evaluated each time a response is shaped.
func FieldGuard[T any](ctx context.Context, allowed []domain.Role, content, fallback T) T {
	if Allowed(ctx, allowed) {
		return content
	}
	return fallback
}
