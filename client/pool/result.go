package pool

import "context"

// Result represents in-flight or completed async work.
type Result struct {
	done   chan struct{}
	err    error
	cancel context.CancelFunc
}

// Done returns a channel that is closed when the work completes.
func (r *Result) Done() <-chan struct{} { return r.done }

// Err blocks until the work completes and returns its error.
func (r *Result) Err() error {
	<-r.done
	return r.err
}

// Cancel cancels the context handed to the work.
func (r *Result) Cancel() {
	r.cancel()
}

// Future is a Result carrying a value.
type Future[T any] struct {
	*Result
	val T
}

// Submit runs fn on p and captures its value.
func Submit[T any](ctx context.Context, p *Pool, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := &Future[T]{}
	f.Result = p.Go(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		f.val = v
		return err
	})

	return f
}

// Get blocks until the work completes and returns its value and error.
func (f *Future[T]) Get() (T, error) {
	err := f.Err()
	return f.val, err
}
