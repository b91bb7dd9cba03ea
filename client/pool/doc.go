// Package pool runs work asynchronously on behalf of a client.
//
// A [Pool] is created once and grows lazily: every submission gets its own
// goroutine, optionally gated by a concurrency limit.
//
//	p := pool.New(0) // unbounded
//	r := p.Go(ctx, func(ctx context.Context) error { ... })
//	// ... do other work ...
//	if err := r.Err(); err != nil { ... }
//
// [Submit] wraps work that produces a value:
//
//	f := pool.Submit(ctx, p, func(ctx context.Context) (*client.Response, error) { ... })
//	resp, err := f.Get()
//
// Shutting the pool down is the owner's job; see [Pool.Shutdown] and
// [Pool.Wait].
package pool
