package pool

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrShutdown is returned for work submitted after [Pool.Shutdown].
var ErrShutdown = errors.New("pool shut down")

// WorkFunc is the signature for async work.
type WorkFunc func(ctx context.Context) error

// Pool runs submitted work in its own goroutines.
type Pool struct {
	wg       sync.WaitGroup
	mu       sync.Mutex
	sem      chan struct{}
	shutdown atomic.Bool
	active   atomic.Int64
	discard  bool
	errs     []error
}

// Option configures a [Pool].
type Option func(*Pool)

// WithoutErrorCollection stops the pool from keeping failed work's errors
// for [Pool.Wait]. Each [Result] still reports its own error.
func WithoutErrorCollection() Option {
	return func(p *Pool) {
		p.discard = true
	}
}

// New creates a Pool. If maxConcurrent <= 0, concurrency is unlimited.
func New(maxConcurrent int, optFns ...Option) *Pool {
	p := &Pool{}
	if maxConcurrent > 0 {
		p.sem = make(chan struct{}, maxConcurrent)
	}

	for _, opt := range optFns {
		opt(p)
	}

	return p
}

// Go launches fn in a new goroutine managed by the pool and returns a
// Result for tracking it.
func (p *Pool) Go(ctx context.Context, fn WorkFunc) *Result {
	ctx, cancel := context.WithCancel(ctx)
	r := &Result{
		done:   make(chan struct{}),
		cancel: cancel,
	}

	if p.shutdown.Load() {
		cancel()
		r.err = ErrShutdown
		close(r.done)
		return r
	}

	p.wg.Add(1)
	go func() {
		defer func() {
			cancel()
			close(r.done)
			p.wg.Done()
		}()

		if p.sem != nil {
			select {
			case p.sem <- struct{}{}:
				defer func() {
					<-p.sem
				}()
			case <-ctx.Done():
				r.err = ctx.Err()
				p.recordErr(r.err)
				return
			}
		}

		// Shutdown may have landed while waiting on the semaphore.
		if p.shutdown.Load() {
			r.err = ErrShutdown
			p.recordErr(r.err)
			return
		}

		p.active.Add(1)
		defer p.active.Add(-1)

		r.err = fn(ctx)
		if r.err != nil {
			p.recordErr(r.err)
		}
	}()

	return r
}

// Wait blocks until all work submitted so far completes.
// Returns the errors collected since the previous Wait, joined via
// errors.Join, and forgets them.
func (p *Pool) Wait() error {
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	err := errors.Join(p.errs...)
	p.errs = nil

	return err
}

// Shutdown prevents new work from executing. Work already running is
// left to finish; use Wait to drain it.
func (p *Pool) Shutdown() {
	p.shutdown.Store(true)
}

// Active reports how many submissions are currently executing.
func (p *Pool) Active() int {
	return int(p.active.Load())
}

func (p *Pool) recordErr(err error) {
	if p.discard {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs = append(p.errs, err)
}
