package client

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/rester/client/inflect"
	"github.com/adamwoolhether/rester/client/mediatype"
	"github.com/adamwoolhether/rester/client/throttle"
)

// Option is a functional option for configuring a [Client] via [Build].
//
// [WithClient], [WithTransport], [WithTimeout], [WithUserAgent],
// [WithThrottle], [WithNoFollowRedirects] and [WithTracer] only configure
// the default [HTTPDispatcher]; they have no effect when [WithDispatcher]
// supplies a dispatcher of its own.
type Option func(*options) error
type options struct {
	mediaTypes    []mediatype.MediaType
	explicitTypes bool
	dispatcher    Dispatcher
	inflector     inflect.Inflector
	factory       RequestFactory
	logger        *slog.Logger
	maxBodySize   int64

	client            *http.Client
	rt                http.RoundTripper
	timeout           *time.Duration
	userAgent         string
	throttle          *throttle.Config
	noFollowRedirects bool
	tracer            trace.Tracer
}

// WithMediaTypes registers exactly the given media types, in order, in
// place of the XML, JSON and form-encoded defaults.
func WithMediaTypes(types ...mediatype.MediaType) Option {
	return func(c *options) error {
		for i, m := range types {
			if m == nil {
				return fmt.Errorf("media type[%d] must not be nil", i)
			}
		}
		c.explicitTypes = true
		c.mediaTypes = append(c.mediaTypes, types...)
		return nil
	}
}

// WithoutDefaultMediaTypes starts the client with an empty registry.
// Types can be added later through [Client.MediaTypes].
func WithoutDefaultMediaTypes() Option {
	return func(c *options) error {
		c.explicitTypes = true
		return nil
	}
}

// WithDispatcher replaces the default [HTTPDispatcher].
func WithDispatcher(d Dispatcher) Option {
	return func(c *options) error {
		if d == nil {
			return errors.New("dispatcher must not be nil")
		}
		c.dispatcher = d
		return nil
	}
}

// WithInflector replaces the default English inflector.
func WithInflector(i inflect.Inflector) Option {
	return func(c *options) error {
		if i == nil {
			return errors.New("inflector must not be nil")
		}
		c.inflector = i
		return nil
	}
}

// WithRequestFactory substitutes the constructor [Client.AtURL] uses to
// build outbound requests. The default is [NewRequest].
func WithRequestFactory(f RequestFactory) Option {
	return func(c *options) error {
		if f == nil {
			return errors.New("request factory must not be nil")
		}
		c.factory = f
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(c *options) error {
		c.logger = logger
		return nil
	}
}

// WithMaxBodySize caps the number of response body bytes a request reads.
// Without it bodies are read in full.
func WithMaxBodySize(n int64) Option {
	return func(c *options) error {
		if n <= 0 {
			return errors.New("max body size must be positive")
		}
		c.maxBodySize = n
		return nil
	}
}

// WithClient sets the [http.Client] the default dispatcher sends through.
// The client is copied, so later options never mutate the caller's value.
func WithClient(hc *http.Client) Option {
	return func(c *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		c.client = hc
		return nil
	}
}

// WithTransport sets a custom [http.RoundTripper] as the base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		c.rt = rt
		return nil
	}
}

// WithTimeout sets the overall request timeout on the underlying [http.Client].
func WithTimeout(d time.Duration) Option {
	return func(c *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		c.timeout = &d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) Option {
	return func(c *options) error {
		c.userAgent = header
		return nil
	}
}

// WithThrottle enables token-bucket rate limiting with the given requests per second and burst capacity.
func WithThrottle(rps, burst int) Option {
	return func(c *options) error {
		cfg := throttle.Config{RPS: rps, Burst: burst}
		if err := cfg.Validate(); err != nil {
			return err
		}
		c.throttle = &cfg
		return nil
	}
}

// WithNoFollowRedirects prevents the default dispatcher from following HTTP redirects.
func WithNoFollowRedirects() Option {
	return func(c *options) error {
		c.noFollowRedirects = true
		return nil
	}
}

// WithTracer sets the tracer used to open a client span per dispatch.
// A no-op tracer is used otherwise.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		c.tracer = tracer
		return nil
	}
}
