// Package client provides the composition root of rester: a [Client]
// that binds a [Dispatcher], a media-type registry, an inflector and an
// execution pool, and hands out requests bound to that configuration.
//
// # Building a Client
//
// Use [Build] with functional options:
//
//	c, err := client.Build(
//		client.WithTimeout(10 * time.Second),
//		client.WithUserAgent("myapp/1.0"),
//	)
//
// By default the registry holds XML, JSON and form-encoded media types in
// that order. [WithMediaTypes] registers exactly the given list instead:
//
//	c, err := client.Build(client.WithMediaTypes(mediatype.JSON{}))
//
// # Addressing Resources
//
// [Client.At] parses an address and returns a [Request]; [Client.AtURL]
// takes an already parsed [url.URL]. Neither performs I/O.
//
//	req, err := c.At("https://api.example.com/orders/1")
//	resp, err := req.Get(ctx)
//	if err := resp.Expect(http.StatusOK); err != nil { ... }
//
//	var order Order
//	err = resp.Decode(&order)
//
// The response body is decoded with the media type registered for its
// Content-Type, then validated against `validate` struct tags.
//
// # Swapping Collaborators
//
// The dispatcher and inflector can be replaced at any time; requests use
// whichever is current when they execute:
//
//	c.UseDispatcher(recorder).UseInflector(inflect.English{})
//
// # Async Requests
//
// [Request.Async] runs a request on the client's pool, see [Client.Threads]:
//
//	f := req.Async(ctx, http.MethodGet, nil)
//	// ... do other work ...
//	resp, err := f.Get()
//
// The pool is never shut down by the client. For lower-level control see
// the [github.com/adamwoolhether/rester/client/pool] package.
package client
