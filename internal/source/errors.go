package source

import "errors"

var (
	// ErrUnavailable indicates the tracker backend is unreachable.
	ErrUnavailable = errors.New("tracker backend unavailable")

	// ErrTimeout indicates the fetch exceeded the configured timeout.
	ErrTimeout = errors.New("tracker request timed out")

	// ErrBadPayload indicates the response body is not a recognized summary
	// or record list.
	ErrBadPayload = errors.New("unrecognized tracker payload")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("tracker retry attempts exhausted")
)
