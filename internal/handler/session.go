package handler

import (
	"net/http"
	"time"

	"github.com/pkordes/trip-planner/internal/auth"
	"github.com/pkordes/trip-planner/internal/domain"
)

// SessionRequest is the body of POST /session.
type SessionRequest struct {
	Secret string `json:"secret" validate:"required"`
}

// SessionResponse describes the caller's session. Token is only set when
// the session is created.
type SessionResponse struct {
	Token     string      `json:"token,omitempty"`
	Role      domain.Role `json:"role"`
	ExpiresAt *time.Time  `json:"expiresAt,omitempty"`
}

func sessionToResponse(token string, s domain.Session) SessionResponse {
	resp := SessionResponse{Token: token, Role: s.Role}
	if !s.ExpiresAt.IsZero() {
		exp := s.ExpiresAt
		resp.ExpiresAt = &exp
	}
	return resp
}

// CreateSession handles POST /session. A secret that matches no role gets
// a 401 "incorrect password".
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if !s.decode(w, r, &req) {
		return
	}

	role, ok := s.Roles.Resolve(req.Secret)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "incorrect password")
		return
	}

	token, sess, err := s.Tokens.Issue(role)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	s.Log.InfoContext(r.Context(), "session created", "role", role, "session_id", sess.ID)
	writeJSON(w, http.StatusCreated, sessionToResponse(token, sess))
}

// GetSession handles GET /session.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFrom(r.Context())
	writeJSON(w, http.StatusOK, sessionToResponse("", sess))
}

// DeleteSession handles DELETE /session. The token stays revoked until it
// would have expired.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFrom(r.Context())
	if err := s.Revoker.Revoke(r.Context(), sess.ID, sess.ExpiresAt); err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	s.Log.InfoContext(r.Context(), "session revoked", "role", sess.Role, "session_id", sess.ID)
	w.WriteHeader(http.StatusNoContent)
}
