// Package inflect converts English nouns between their singular and plural
// forms. A [github.com/adamwoolhether/rester/client.Client] uses an
// [Inflector] to derive collection resource names from singular ones.
package inflect

import (
	"strings"

	"github.com/jinzhu/inflection"
)

// Inflector maps a noun to its plural and singular forms.
// Implementations must be pure and safe for concurrent use.
type Inflector interface {
	Pluralize(noun string) string
	Singularize(noun string) string
}

// English is the default Inflector, covering regular nouns plus the common
// irregular and uncountable ones.
type English struct{}

func (English) Pluralize(noun string) string { return inflection.Plural(noun) }

func (English) Singularize(noun string) string { return inflection.Singular(noun) }

// Funcs adapts a pair of functions into an Inflector. A nil func leaves the
// noun unchanged.
type Funcs struct {
	Plural   func(string) string
	Singular func(string) string
}

func (f Funcs) Pluralize(noun string) string {
	if f.Plural == nil {
		return noun
	}

	return f.Plural(noun)
}

func (f Funcs) Singularize(noun string) string {
	if f.Singular == nil {
		return noun
	}

	return f.Singular(noun)
}

// Collection returns the lower-cased plural of resource, suitable as a
// collection path segment: "Order" becomes "orders".
func Collection(i Inflector, resource string) string {
	return strings.ToLower(i.Pluralize(strings.TrimSpace(resource)))
}
