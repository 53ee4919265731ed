package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidation indicates a request is missing a required field.
	// The relay maps it to a client error.
	ErrValidation = errors.New("validation failed")

	// ErrUpstream indicates the generation service call failed or
	// returned an error. The relay maps it to a server error.
	ErrUpstream = errors.New("generation service error")

	// ErrCredentialMissing indicates no API credential is configured for
	// the generation service. Chat operations must not be attempted.
	ErrCredentialMissing = errors.New("generation service credential missing")

	// ErrNoFiles indicates there are no valid files to export.
	ErrNoFiles = errors.New("no files available")

	// ErrRateLimited indicates the proactive request throttle was interrupted.
	ErrRateLimited = errors.New("rate limited")
)
