package mediatype

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Content-type identifiers of the built-in media types.
const (
	ContentTypeXML  = "application/xml"
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// ErrNotFound is the sentinel error wrapped by [NotFoundError].
var ErrNotFound = errors.New("media type not registered")

// NotFoundError is returned by [Registry.Resolve] when no codec is
// registered for the requested identifier.
type NotFoundError struct {
	ContentType string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %q", ErrNotFound, e.ContentType)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// MediaType is a named representation able to encode and decode values.
type MediaType interface {
	ContentType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Defaults returns the built-in media types in registration order:
// XML, JSON, then form-encoded.
func Defaults() []MediaType {
	return []MediaType{XML{}, JSON{}, Form{}}
}

// Registry is an ordered, mutable set of media types keyed by content type.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	order []string
	types map[string]MediaType
}

// NewRegistry returns a Registry holding exactly the given types, in order.
func NewRegistry(types ...MediaType) *Registry {
	r := &Registry{types: make(map[string]MediaType, len(types))}
	for _, m := range types {
		r.Register(m)
	}

	return r
}

// Register adds m, replacing any codec already registered under the same
// identifier. A replaced codec keeps its original position. Nil is ignored.
func (r *Registry) Register(m MediaType) {
	if m == nil {
		return
	}

	key := normalize(m.ContentType())

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.types[key]; !ok {
		r.order = append(r.order, key)
	}
	r.types[key] = m
}

// Resolve returns the codec registered for contentType.
func (r *Registry) Resolve(contentType string) (MediaType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.types[normalize(contentType)]
	if !ok {
		return nil, &NotFoundError{ContentType: contentType}
	}

	return m, nil
}

// ContentTypes returns the registered identifiers in registration order.
func (r *Registry) ContentTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)

	return out
}

// Len reports the number of registered media types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

func normalize(contentType string) string {
	return strings.ToLower(strings.TrimSpace(contentType))
}
