package catalog

import "errors"

// Error kinds surfaced by catalog clients. Callers branch with errors.Is;
// the wrapped cause carries the transport detail for logging.
var (
	// ErrUnavailable means the remote fetch failed outright, or an operation
	// that requires remote data got nothing back.
	ErrUnavailable = errors.New("remote catalog unavailable")
	// ErrUnauthorized means the credential was missing, expired or rejected.
	ErrUnauthorized = errors.New("remote catalog rejected credential")
)
