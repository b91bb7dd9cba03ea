// Package throttle provides an [http.RoundTripper] that rate-limits
// outbound HTTP requests using a token bucket from
// [golang.org/x/time/rate].
//
// # Usage
//
// The default dispatcher installs it when built with
// client.WithThrottle. It can also wrap any transport directly:
//
//	rt, err := throttle.NewRoundTripper(
//		throttle.Config{RPS: 10, Burst: 5},
//		func() *slog.Logger { return slog.Default() },
//		http.DefaultTransport,
//	)
//	httpClient := &http.Client{Transport: rt}
//
// Requests over the limit block until a token frees up or the request
// context ends, whichever comes first.
package throttle
