// Package mediatype holds the codecs a [github.com/adamwoolhether/rester/client.Client]
// consults when encoding request payloads and decoding response bodies.
//
// # Registry
//
// A [Registry] maps a content-type identifier to a [MediaType]. Lookups are
// exact matches on the identifier (case-insensitive, surrounding whitespace
// ignored); parameters such as charset must be stripped by the caller.
//
//	r := mediatype.NewRegistry(mediatype.Defaults()...)
//	m, err := r.Resolve("application/json")
//
// Registering an identifier twice replaces the earlier codec in place.
//
// # Built-in Types
//
// [XML], [JSON] and [Form] cover application/xml, application/json and
// application/x-www-form-urlencoded respectively. [Defaults] returns them in
// that order.
package mediatype
