package client

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/adamwoolhether/rester/client/inflect"
	"github.com/adamwoolhether/rester/client/mediatype"
	"github.com/adamwoolhether/rester/client/pool"
)

// RequestFactory builds the outbound request for a URI addressed through c.
type RequestFactory func(u *url.URL, c *Client) *Request

// Client is the composition root. It owns one media-type registry, one
// dispatcher, one inflector and one execution pool, and hands out
// requests bound to itself through [Client.At] and [Client.AtURL].
//
// The dispatcher and inflector may be swapped at any time; requests read
// the current values when they execute.
type Client struct {
	mu         sync.RWMutex
	dispatcher Dispatcher
	inflector  inflect.Inflector

	types       *mediatype.Registry
	threads     *pool.Pool
	factory     RequestFactory
	logger      *slog.Logger
	maxBodySize int64
	lastURI     atomic.Pointer[url.URL]
}

// Build creates a Client. Unless overridden it registers the XML, JSON
// and form-encoded media types, sends through an [HTTPDispatcher], and
// inflects with [inflect.English]. Build performs no I/O.
func Build(optFns ...Option) (*Client, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	client := &Client{
		inflector:   inflect.English{},
		threads:     pool.New(0, pool.WithoutErrorCollection()),
		factory:     NewRequest,
		logger:      slog.Default(),
		maxBodySize: opts.maxBodySize,
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.inflector != nil {
		client.inflector = opts.inflector
	}

	if opts.factory != nil {
		client.factory = opts.factory
	}

	types := mediatype.Defaults()
	if opts.explicitTypes {
		types = opts.mediaTypes
	}
	client.types = mediatype.NewRegistry(types...)

	client.dispatcher = opts.dispatcher
	if client.dispatcher == nil {
		d, err := newHTTPDispatcher(opts, func() *slog.Logger { return client.logger })
		if err != nil {
			return nil, fmt.Errorf("configuring dispatcher: %w", err)
		}
		client.dispatcher = d
	}

	return client, nil
}

// UseDispatcher replaces the dispatcher and returns c for chaining.
// A nil dispatcher is ignored.
func (c *Client) UseDispatcher(d Dispatcher) *Client {
	if d == nil {
		c.logger.Warn("ignoring nil dispatcher")
		return c
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatcher = d

	return c
}

// UseInflector replaces the inflector and returns c for chaining.
// A nil inflector is ignored.
func (c *Client) UseInflector(i inflect.Inflector) *Client {
	if i == nil {
		c.logger.Warn("ignoring nil inflector")
		return c
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflector = i

	return c
}

// Dispatcher returns the current dispatcher.
func (c *Client) Dispatcher() Dispatcher {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.dispatcher
}

// Inflector returns the current inflector.
func (c *Client) Inflector() inflect.Inflector {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.inflector
}

// MediaTypes returns the live registry. Registering through it takes
// effect for every request executed afterwards.
func (c *Client) MediaTypes() *mediatype.Registry {
	return c.types
}

// Threads returns the pool used for async dispatch. It is created with the
// client and never shut down by it; draining it is up to the caller. The
// pool does not collect errors: each [pool.Future] carries its own.
func (c *Client) Threads() *pool.Pool {
	return c.threads
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// AtURL records u as the last addressed URI and returns a new request for
// it. No I/O happens until a verb is called on the request.
//
// A nil u is not recorded; every verb on the returned request fails with
// a *[MalformedAddressError].
func (c *Client) AtURL(u *url.URL) *Request {
	if u == nil {
		c.logger.Warn("addressing nil uri")
		return c.factory(u, c)
	}

	c.lastURI.Store(u)
	c.logger.Debug("addressing resource", "uri", u.Redacted())

	return c.factory(u, c)
}

// At parses raw and addresses it like [Client.AtURL]. An unparsable raw
// yields a *[MalformedAddressError] and leaves the last URI untouched.
//
// Parsing is strict: characters RFC 3986 never allows unescaped, such as
// spaces or '|', are rejected even where [url.Parse] would accept them.
func (c *Client) At(raw string) (*Request, error) {
	if i := strings.IndexAny(raw, invalidURIChars); i >= 0 {
		return nil, &MalformedAddressError{
			Address: raw,
			Err:     fmt.Errorf("invalid character %q at index %d", raw[i], i),
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, &MalformedAddressError{Address: raw, Err: err}
	}

	return c.AtURL(u), nil
}

// invalidURIChars must be percent-encoded in every URI component.
const invalidURIChars = " \"<>\\^`{|}"

// LastURI returns the most recently addressed URI, or false if nothing has
// been addressed yet. Under concurrent use the last write wins.
func (c *Client) LastURI() (*url.URL, bool) {
	u := c.lastURI.Load()
	return u, u != nil
}

// Collection returns the collection URI for resource beneath base, named
// by the current inflector: base "https://api.test/v1" and resource
// "Order" give "https://api.test/v1/orders".
func (c *Client) Collection(base *url.URL, resource string) *url.URL {
	return base.JoinPath(inflect.Collection(c.Inflector(), resource))
}

type ctxKey int

const clientKey ctxKey = iota + 1

func withClient(ctx context.Context, c *Client) context.Context {
	return context.WithValue(ctx, clientKey, c)
}

// FromContext returns the Client executing the request that carries ctx.
func FromContext(ctx context.Context) (*Client, bool) {
	c, ok := ctx.Value(clientKey).(*Client)
	return c, ok
}
