package client

import (
	"errors"
	"fmt"
)

// maxErrBodySize caps the amount of response body kept when
// building an error for an unexpected status code.
const maxErrBodySize = 4 << 10 // 4KB

var (
	// ErrMalformedAddress is the sentinel error wrapped by [MalformedAddressError].
	ErrMalformedAddress = errors.New("malformed address")
	// ErrTransport is the sentinel error wrapped by [TransportError].
	ErrTransport = errors.New("transport failure")
	// ErrUnexpectedStatusCode is the sentinel error wrapped by [UnexpectedStatusError].
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	// ErrAuthFailure is joined with [ErrUnexpectedStatusCode] when the server
	// responds with 401 Unauthorized or 403 Forbidden.
	ErrAuthFailure = errors.New("auth failure")
	// ErrNoLocation is returned by [Response.Location] when the response
	// carries no Location header.
	ErrNoLocation = errors.New("no location header")
	// ErrBodyTooLarge is returned when a response body exceeds the limit
	// set with [WithMaxBodySize].
	ErrBodyTooLarge = errors.New("response body too large")

	errNilURI = errors.New("nil uri")
)

// MalformedAddressError is returned by [Client.At] when the address
// cannot be parsed as a URI. Err holds the parse failure.
type MalformedAddressError struct {
	Address string
	Err     error
}

func (e *MalformedAddressError) Error() string {
	return fmt.Sprintf("%v %q: %v", ErrMalformedAddress, e.Address, e.Err)
}

func (e *MalformedAddressError) Unwrap() []error {
	return []error{ErrMalformedAddress, e.Err}
}

// TransportError is returned by [HTTPDispatcher] when the request could
// not be completed on the wire.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%v: %s %s: %v", ErrTransport, e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// UnexpectedStatusError is returned when the HTTP response status code
// does not match the expected value.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%v: %d, body: %s", e.Err, e.StatusCode, e.Body)
}

func (e *UnexpectedStatusError) Unwrap() error {
	return e.Err
}
