package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/trip-planner/internal/domain"
)

// ErrorResponse is the JSON envelope of every error reply.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v as the reply body. A Content-Type already set by the
// caller is kept.
func writeJSON(w http.ResponseWriter, status int, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// requestError rejects a request before it reaches the service layer
// (malformed body, bad parameter).
func requestError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnprocessableEntity, "validation_error", message)
}

// writeServiceError maps a service error to its HTTP status. notFound is the
// message used for domain.ErrNotFound, since the handler knows what was
// being looked up. Unknown errors are logged and reported as 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", notFound)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrPrecondition):
		writeError(w, http.StatusConflict, "precondition_failed", unwrapMessage(err, domain.ErrPrecondition))
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", unwrapMessage(err, domain.ErrUnauthorized))
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", unwrapMessage(err, domain.ErrForbidden))
	default:
		s.Log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "an unexpected error occurred")
	}
}

// unwrapMessage extracts the human-readable part after the sentinel.
// e.g. "service.TripService.Update: validation error: title is required" → "title is required"
func unwrapMessage(err, sentinel error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	if i := strings.LastIndex(msg, ": "+sentinel.Error()); i >= 0 {
		return strings.TrimSpace(msg[:i])
	}
	return msg
}

// decode reads a JSON body into dst and runs struct validation.
// It writes the 422 reply itself and returns false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
			return false
		}
		requestError(w, "malformed JSON body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		requestError(w, validationMessage(err))
		return false
	}
	return true
}

// validationMessage turns validator errors into one readable line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
