package client

import (
	"github.com/adamwoolhether/rester/client/mediatype"
	"github.com/adamwoolhether/rester/internal/validate"
)

// ————————————————————————————————————————————————————————————————————
// Type aliases – re-export user-facing types from subpackages.
// ————————————————————————————————————————————————————————————————————

type (
	// FieldError is a single failed `validate` tag reported by [Response.Decode].
	FieldError = validate.FieldError

	// FieldErrors collects every failed field of a decoded value.
	FieldErrors = validate.FieldErrors

	// NotFoundError reports a content type with no registered media type.
	NotFoundError = mediatype.NotFoundError
)

// ————————————————————————————————————————————————————————————————————
// Sentinel errors
// ————————————————————————————————————————————————————————————————————

// ErrMediaTypeNotFound indicates no media type is registered for a content type.
var ErrMediaTypeNotFound = mediatype.ErrNotFound
