package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/trip-planner/internal/auth"
	"github.com/pkordes/trip-planner/internal/domain"
)

// SessionParser verifies a bearer token. *auth.TokenIssuer satisfies it.
type SessionParser interface {
	Parse(token string) (domain.Session, error)
}

// NewAuthenticator returns a middleware that turns an "Authorization: Bearer"
// header into a session on the request context. Requests without the header
// pass through anonymously; a bad, expired or revoked token is rejected
// with 401 so the client can drop its stored session.
func NewAuthenticator(tokens SessionParser, revoked auth.Revoker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearer(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			s, err := tokens.Parse(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired session")
				return
			}
			gone, err := revoked.IsRevoked(r.Context(), s.ID)
			if err != nil {
				log.ErrorContext(r.Context(), "revocation check failed", "error", err)
				writeError(w, http.StatusInternalServerError, "internal_error", "an unexpected error occurred")
				return
			}
			if gone {
				writeError(w, http.StatusUnauthorized, "unauthorized", "session has been logged out")
				return
			}

			noteRole(r.Context(), s.Role)
			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), s)))
		})
	}
}

// RequireRole returns a middleware that admits only sessions whose role is
// in allowed: 401 without a session, 403 with the wrong role.
func RequireRole(allowed ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := auth.SessionFrom(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
				return
			}
			if !s.Role.In(allowed) {
				writeError(w, http.StatusForbidden, "forbidden", "role "+string(s.Role)+" may not do this")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeError writes the API's JSON error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
