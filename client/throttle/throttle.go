package throttle

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

var (
	ErrMustNotBeZero = errors.New("must be greater than zero")
	ErrWaitingFailed = errors.New("limiter waiting failed")
	ErrContextEnded  = errors.New("throttle context ended")
)

// Config holds the token bucket settings.
type Config struct {
	RPS   int
	Burst int
}

// Validate reports whether both limits are positive.
func (c Config) Validate() error {
	if c.RPS <= 0 || c.Burst <= 0 {
		return fmt.Errorf("rps[%d] and burst[%d] %w", c.RPS, c.Burst, ErrMustNotBeZero)
	}

	return nil
}

type roundTripper struct {
	cfg     Config
	limiter *rate.Limiter
	logFn   func() *slog.Logger
	next    http.RoundTripper
}

// NewRoundTripper wraps next with a limiter built from cfg. logFn is
// resolved on every throttled request, so the logger can be swapped after
// construction; a nil logFn or a nil logger disables logging.
func NewRoundTripper(cfg Config, logFn func() *slog.Logger, next http.RoundTripper) (http.RoundTripper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if next == nil {
		next = http.DefaultTransport
	}
	if logFn == nil {
		logFn = func() *slog.Logger { return nil }
	}

	rt := &roundTripper{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		logFn:   logFn,
		next:    next,
	}

	return rt, nil
}

func (t *roundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w before wait: %w", ErrContextEnded, err)
	}

	delayed := t.limiter.Tokens() < 1
	start := time.Now()

	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWaitingFailed, err)
	}

	if delayed {
		if logger := t.logFn(); logger != nil {
			logger.Info("request throttled",
				"waited", time.Since(start).String(),
				"rps", t.cfg.RPS,
				"burst", t.cfg.Burst,
				"host", r.URL.Host,
				"path", r.URL.Path,
			)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w after wait: %w", ErrContextEnded, err)
	}

	return t.next.RoundTrip(r)
}
