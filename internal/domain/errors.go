package domain

import "errors"

// Request errors.
var (
	ErrMissingUID         = errors.New("missing uid")
	ErrInvalidRequestBody = errors.New("invalid request body")
)

// Identity backend errors.
var (
	ErrBackendFailure    = errors.New("identity backend failure")
	ErrInvalidCredential = errors.New("invalid service account credential")
)

// Rate limiting errors.
var (
	ErrRateLimited = errors.New("rate limit exceeded")
)

// BackendError carries a failure reported by the identity backend. Error
// returns the backend's own message so it can be passed to the caller
// unchanged.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string { return e.Err.Error() }

func (e *BackendError) Unwrap() error { return e.Err }

// Is reports BackendError as ErrBackendFailure.
func (e *BackendError) Is(target error) bool { return target == ErrBackendFailure }
