package marketdata

import (
	"fmt"
	"net/http"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Failure kinds of a fetch. Every error returned by Client.Fetch matches
// exactly one of these with errors.Is.
var (
	// ErrRequest indicates the request could not be built, typically because
	// the symbol made the path unparseable.
	ErrRequest = constError("malformed request")

	// ErrTransport indicates the backend could not be reached.
	ErrTransport = constError("transport failure")

	// ErrStatus indicates the backend answered with a non-2xx status.
	ErrStatus = constError("unexpected status")

	// ErrMalformedBody indicates the body was not a JSON array of objects.
	ErrMalformedBody = constError("malformed response body")
)

// StatusError carries the status of a non-2xx response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s from %s", ErrStatus, e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// Is reports whether target is ErrStatus.
func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}
