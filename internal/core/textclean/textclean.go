// Package textclean prepares free-form ticket text for persistence
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Strip control characters (Sanitize)
// 3 Unicode NFC normalization
// 4 Remove invisible format chars ZWJ ZWNJ FEFF etc
// Meaning is preserved; no case folding and no whitespace collapsing, ticket
// text keeps its line structure for display
package textclean

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Cleaner is concurrency safe when used with the pool below
type Cleaner struct{}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
		)
	},
}

// New constructs a Cleaner
func New() *Cleaner { return &Cleaner{} }

// Clean returns the cleaned form of s following the pipeline described above
func (c *Cleaner) Clean(s string) string {
	if s == "" {
		return ""
	}

	s = Sanitize(s)
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	return strings.TrimSpace(ns)
}
