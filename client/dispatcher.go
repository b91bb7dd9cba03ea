package client

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/adamwoolhether/rester/client/throttle"
)

// Dispatcher sends a fully built request over the wire.
//
// The owning [Client] is reachable from the request context via
// [FromContext], for dispatchers that need its media types or inflector.
// Errors are handed back to the caller untouched.
type Dispatcher interface {
	Dispatch(req *http.Request) (*http.Response, error)
}

// DispatcherFunc adapts a function into a [Dispatcher].
type DispatcherFunc func(req *http.Request) (*http.Response, error)

func (f DispatcherFunc) Dispatch(req *http.Request) (*http.Response, error) {
	return f(req)
}

// HTTPDispatcher is the default [Dispatcher], sending requests through an
// [http.Client] and recording a client span for each one.
type HTTPDispatcher struct {
	c      *http.Client
	tracer trace.Tracer
}

// NewHTTPDispatcher builds a standalone HTTPDispatcher, typically to
// install on an existing client with [Client.UseDispatcher]. Options that
// do not concern the transport are ignored.
func NewHTTPDispatcher(optFns ...Option) (*HTTPDispatcher, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying dispatcher option: %w", err)
		}
	}

	logger := opts.logger
	if logger == nil {
		logger = slog.Default()
	}

	return newHTTPDispatcher(opts, func() *slog.Logger { return logger })
}

func newHTTPDispatcher(opts options, logFn func() *slog.Logger) (*HTTPDispatcher, error) {
	hc := &http.Client{}
	if opts.client != nil {
		cpy := *opts.client
		hc = &cpy
	}

	if opts.timeout != nil {
		hc.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		hc.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport
	}
	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}
	if opts.throttle != nil {
		rt, err := throttle.NewRoundTripper(*opts.throttle, logFn, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	hc.Transport = transport

	tracer := opts.tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("no-op tracer")
	}

	d := HTTPDispatcher{
		c:      hc,
		tracer: tracer,
	}

	return &d, nil
}

// Dispatch sends req, propagating the span context in its headers.
// Wire failures come back as *[TransportError].
func (d *HTTPDispatcher) Dispatch(req *http.Request) (*http.Response, error) {
	ctx, span := d.tracer.Start(req.Context(), "rester.dispatch", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(
		attribute.String("http.request.method", req.Method),
		attribute.String("url.full", req.URL.Redacted()),
	)

	out := req.Clone(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(out.Header))

	resp, err := d.c.Do(out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, &TransportError{
			Method: req.Method,
			URL:    req.URL.Redacted(),
			Err:    err,
		}
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}

	return resp, nil
}

// HTTPClient returns the underlying [http.Client].
func (d *HTTPDispatcher) HTTPClient() *http.Client {
	return d.c
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
