package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/domain"
)

const issuer = "trip-planner"

// claims is the JWT payload of a session token.
type claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer returns an issuer whose tokens live for ttl.
// A zero ttl issues tokens that never expire, matching a session that only
// ends on explicit logout.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a session for role and its signed token.
func (t *TokenIssuer) Issue(role domain.Role) (string, domain.Session, error) {
	if !role.Valid() {
		return "", domain.Session{}, fmt.Errorf("auth.TokenIssuer.Issue: %w: unknown role %q", domain.ErrValidation, role)
	}
	now := t.now().UTC().Truncate(time.Second)
	s := domain.Session{ID: uuid.NewString(), Role: role}

	c := claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       s.ID,
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if t.ttl > 0 {
		s.ExpiresAt = now.Add(t.ttl)
		c.ExpiresAt = jwt.NewNumericDate(s.ExpiresAt)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", domain.Session{}, fmt.Errorf("auth.TokenIssuer.Issue: %w", err)
	}
	return signed, s, nil
}

// Parse verifies a token and returns its session. Any failure (bad
// signature, expired, unknown role) is reported as domain.ErrUnauthorized.
func (t *TokenIssuer) Parse(token string) (domain.Session, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return domain.Session{}, fmt.Errorf("auth.TokenIssuer.Parse: %w: %v", domain.ErrUnauthorized, err)
	}
	if !c.Role.Valid() || c.ID == "" {
		return domain.Session{}, fmt.Errorf("auth.TokenIssuer.Parse: %w: malformed claims", domain.ErrUnauthorized)
	}

	s := domain.Session{ID: c.ID, Role: c.Role}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time.UTC()
	}
	return s, nil
}
