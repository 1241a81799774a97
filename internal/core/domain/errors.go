package domain

import "errors"

// Common domain errors
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("resource not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrForbidden    = errors.New("forbidden")
)

// Auth errors
var (
	ErrDuplicateAccount   = errors.New("farmer already exists")
	ErrAccountNotFound    = errors.New("farmer not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("access denied, no token provided")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// Collaborator errors
var (
	ErrEnrichmentFailed     = errors.New("weather enrichment failed")
	ErrServiceNotConfigured = errors.New("service is not configured")
	ErrServiceUnavailable   = errors.New("service is unavailable")
	ErrMalformedResponse    = errors.New("malformed upstream response")
)

// UpstreamError carries a non-2xx answer from an external service so the
// caller can forward its status.
type UpstreamError struct {
	Service    string
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	if e.Detail == "" {
		return e.Service + ": unexpected status"
	}
	return e.Service + ": " + e.Detail
}
