// Package sanitize cleans upstream-provided text before it reaches a
// Telegram result row or placeholder title
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFC normalization
// 3 Remove format chars ZWJ ZWNJ FEFF etc
// 4 Drop remaining control runes
// 5 Collapse whitespace to single spaces and trim
package sanitize

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
		)
	},
}

// Clean returns s ready for a single display line: valid UTF-8, no
// control or format characters, whitespace runs collapsed to one space
func Clean(s string) string {
	if s == "" {
		return ""
	}

	// 1 repair UTF-8 drop invalid bytes
	s = strings.ToValidUTF8(s, "")

	// 2-3 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	// 4-5 drop controls and collapse whitespace
	return collapse(ns)
}

// collapse converts whitespace runs to a single ASCII space, drops any
// remaining control runes, and trims both ends
func collapse(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if unicode.IsControl(r) {
			continue
		}
		if inWS {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			inWS = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Truncate caps s at max runes, ending with an ellipsis when cut. The
// cut point comes from the rune iterator, not byte math, so it never
// lands inside a multibyte sequence
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max-1 {
			return s[:i] + "…"
		}
		n++
	}
	return s
}

// Display is the Clean then Truncate combination applied to package
// descriptions and upstream error text
func Display(s string, max int) string {
	return Truncate(Clean(s), max)
}
