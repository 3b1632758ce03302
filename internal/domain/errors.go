package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. unknown day status, duplicate ids, malformed event time).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrPrecondition is returned when an operation is rejected before any
// store call because required state is missing, such as saving a gear
// list for a trip that has never been saved.
// Handlers should map this to HTTP 409 Conflict.
var ErrPrecondition = errors.New("precondition failed")

// ErrUnauthorized is returned when no valid session accompanies a request,
// including a shared secret that matches no role.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when the session's role is not allowed to
// perform the operation.
var ErrForbidden = errors.New("forbidden")
