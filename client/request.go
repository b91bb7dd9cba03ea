package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/adamwoolhether/rester/client/mediatype"
	"github.com/adamwoolhether/rester/client/pool"
)

// Request is an outbound request for a single URI. It keeps a reference
// to the Client that addressed it and reads the client's dispatcher and
// media types only when a verb executes.
//
// The configuration methods mutate and return the same Request, so calls
// chain:
//
//	resp, err := c.AtURL(u).As(mediatype.ContentTypeForm).With("X-Tenant", "a").Post(ctx, form)
type Request struct {
	id          string
	uri         *url.URL
	client      *Client
	header      http.Header
	cookies     []*http.Cookie
	contentType string
	accept      []string
}

// NewRequest is the default [RequestFactory]. Payloads are encoded as
// JSON unless [Request.As] says otherwise.
func NewRequest(u *url.URL, c *Client) *Request {
	return &Request{
		id:          uuid.NewString(),
		uri:         u,
		client:      c,
		header:      make(http.Header),
		contentType: mediatype.ContentTypeJSON,
	}
}

// ID returns the identifier sent in the X-Request-Id header.
func (r *Request) ID() string { return r.id }

// URI returns the addressed URI.
func (r *Request) URI() *url.URL { return r.uri }

// Client returns the client that addressed the request.
func (r *Request) Client() *Client { return r.client }

// With adds a header value.
func (r *Request) With(key, value string) *Request {
	r.header.Add(key, value)
	return r
}

// As sets the media type payloads are encoded with.
func (r *Request) As(contentType string) *Request {
	r.contentType = contentType
	return r
}

// Accept sets the Accept header. Without it the request accepts every
// registered media type, in registration order.
func (r *Request) Accept(contentTypes ...string) *Request {
	r.accept = contentTypes
	return r
}

// WithCookies attaches the given cookies.
func (r *Request) WithCookies(cookies ...*http.Cookie) *Request {
	r.cookies = append(r.cookies, cookies...)
	return r
}

func (r *Request) Get(ctx context.Context) (*Response, error) {
	return r.Do(ctx, http.MethodGet, nil)
}

func (r *Request) Head(ctx context.Context) (*Response, error) {
	return r.Do(ctx, http.MethodHead, nil)
}

func (r *Request) Delete(ctx context.Context) (*Response, error) {
	return r.Do(ctx, http.MethodDelete, nil)
}

func (r *Request) Options(ctx context.Context) (*Response, error) {
	return r.Do(ctx, http.MethodOptions, nil)
}

func (r *Request) Post(ctx context.Context, payload any) (*Response, error) {
	return r.Do(ctx, http.MethodPost, payload)
}

func (r *Request) Put(ctx context.Context, payload any) (*Response, error) {
	return r.Do(ctx, http.MethodPut, payload)
}

func (r *Request) Patch(ctx context.Context, payload any) (*Response, error) {
	return r.Do(ctx, http.MethodPatch, payload)
}

// Async runs [Request.Do] on the client's pool.
func (r *Request) Async(ctx context.Context, method string, payload any) *pool.Future[*Response] {
	return pool.Submit(ctx, r.client.Threads(), func(ctx context.Context) (*Response, error) {
		return r.Do(ctx, method, payload)
	})
}

// Do encodes payload, hands the request to the client's current
// dispatcher and reads the full response body. Dispatcher errors are
// returned as-is.
//
// []byte, string and io.Reader payloads are sent raw; anything else is
// marshalled by the registered media type named by [Request.As].
//
// The response body is buffered in memory. [WithMaxBodySize] bounds it;
// larger bodies fail with [ErrBodyTooLarge].
func (r *Request) Do(ctx context.Context, method string, payload any) (*Response, error) {
	if r.uri == nil {
		return nil, &MalformedAddressError{Err: errNilURI}
	}

	body, err := r.encode(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(withClient(ctx, r.client), method, r.uri.String(), body)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	for k, v := range r.header {
		for _, element := range v {
			req.Header.Add(k, element)
		}
	}

	for _, cookie := range r.cookies {
		req.AddCookie(cookie)
	}

	if payload != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if req.Header.Get("Accept") == "" {
		if accept := r.acceptHeader(); accept != "" {
			req.Header.Set("Accept", accept)
		}
	}
	req.Header.Set("X-Request-Id", r.id)

	logger := r.client.Logger()
	logger.Debug("dispatching request", "id", r.id, "method", method, "uri", r.uri.Redacted())

	resp, err := r.client.Dispatcher().Dispatch(req)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	src := io.Reader(resp.Body)
	limit := r.client.maxBodySize
	if limit > 0 {
		src = io.LimitReader(resp.Body, limit+1)
	}

	b, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if limit > 0 && int64(len(b)) > limit {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, limit)
	}

	response := Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       b,
		request:    r,
	}

	return &response, nil
}

func (r *Request) encode(payload any) (io.Reader, error) {
	switch p := payload.(type) {
	case nil:
		return nil, nil
	case io.Reader:
		return p, nil
	case []byte:
		return bytes.NewReader(p), nil
	case string:
		return strings.NewReader(p), nil
	}

	m, err := r.client.MediaTypes().Resolve(baseMediaType(r.contentType))
	if err != nil {
		return nil, fmt.Errorf("encoding request payload: %w", err)
	}

	b, err := m.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request payload: %w", err)
	}

	return bytes.NewReader(b), nil
}

func (r *Request) acceptHeader() string {
	if len(r.accept) > 0 {
		return strings.Join(r.accept, ", ")
	}

	return strings.Join(r.client.MediaTypes().ContentTypes(), ", ")
}
