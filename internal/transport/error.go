package transport

import "fmt"

// Well-known HTTP status codes the client distinguishes. StatusNone marks
// failures where no HTTP response was received at all (network error,
// timeout); callers cannot tell those apart, which is deliberate.
const (
	StatusNone                = 0
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusInternalServerError = 500
)

// Error is the typed failure every transport call surfaces: a human-readable
// message plus the HTTP status code, 0 when the request never completed.
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	if e.StatusCode == StatusNone {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// IsUnauthorized reports whether the server rejected the credentials.
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == StatusUnauthorized
}

// IsForbidden reports whether access was denied.
func (e *Error) IsForbidden() bool {
	return e.StatusCode == StatusForbidden
}

// IsNotFound reports whether the resource does not exist.
func (e *Error) IsNotFound() bool {
	return e.StatusCode == StatusNotFound
}

// IsServerError reports whether the server failed internally.
func (e *Error) IsServerError() bool {
	return e.StatusCode == StatusInternalServerError
}

// IsNetwork reports whether no HTTP response was received.
func (e *Error) IsNetwork() bool {
	return e.StatusCode == StatusNone
}
