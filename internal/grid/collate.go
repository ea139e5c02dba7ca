package grid

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newComparer returns a locale-aware, numeric-aware string comparison
// ("2" before "10"). Collators are not safe for concurrent use, so each
// sort gets its own.
func newComparer() func(a, b string) int {
	c := collate.New(language.Und, collate.Numeric)
	return c.CompareString
}
