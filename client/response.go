package client

import (
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/adamwoolhether/rester/internal/validate"
)

// Response is a fully read response to a [Request].
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	request *Request
}

// Request returns the request this is the response to.
func (r *Response) Request() *Request { return r.request }

// ContentType returns the response media type without parameters.
func (r *Response) ContentType() string {
	return baseMediaType(r.Header.Get("Content-Type"))
}

// Decode unmarshals the body with the registered media type matching the
// response Content-Type, then validates struct targets against their
// `validate` tags. v must be a pointer.
func (r *Response) Decode(v any) error {
	m, err := r.request.client.MediaTypes().Resolve(r.ContentType())
	if err != nil {
		return fmt.Errorf("decoding body: %w", err)
	}

	if err := m.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decoding body: %w", err)
	}

	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validating body: %w", err)
	}

	return nil
}

// Expect returns an *[UnexpectedStatusError] unless the status code is
// one of codes. With no codes, any 2xx status passes.
func (r *Response) Expect(codes ...int) error {
	if len(codes) == 0 && r.StatusCode >= 200 && r.StatusCode < 300 {
		return nil
	}
	if slices.Contains(codes, r.StatusCode) {
		return nil
	}

	body := r.Body
	if len(body) > maxErrBodySize {
		body = body[:maxErrBodySize]
	}

	err := ErrUnexpectedStatusCode
	if r.StatusCode == http.StatusUnauthorized || r.StatusCode == http.StatusForbidden {
		err = fmt.Errorf("%w: %w", ErrAuthFailure, ErrUnexpectedStatusCode)
	}

	return &UnexpectedStatusError{
		StatusCode: r.StatusCode,
		Body:       string(body),
		Err:        err,
	}
}

// Location addresses the response's Location header through the owning
// client. Relative locations resolve against the request URI.
func (r *Response) Location() (*Request, error) {
	loc := r.Header.Get("Location")
	if loc == "" {
		return nil, ErrNoLocation
	}

	ref, err := url.Parse(loc)
	if err != nil {
		return nil, &MalformedAddressError{Address: loc, Err: err}
	}

	return r.request.client.AtURL(r.request.uri.ResolveReference(ref)), nil
}

// baseMediaType strips parameters such as charset from a Content-Type.
func baseMediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt, _, _ = strings.Cut(contentType, ";")
		return strings.ToLower(strings.TrimSpace(mt))
	}

	return mt
}
