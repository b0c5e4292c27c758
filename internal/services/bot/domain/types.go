// Package domain defines the inline search pipeline ports and types
package domain

import "time"

// Mode selects which package attribute a term is matched against
type Mode string

// Search modes parsed from the raw query text
const (
	ModeName       Mode = "name"
	ModeMaintainer Mode = "maintainer"
)

// InlineEvent is one inline query as received from the platform.
// Immutable; one per incoming update
type InlineEvent struct {
	QueryID     string
	RequesterID int64
	Text        string
	Offset      string
	At          time.Time
}

// Entry is one selectable result row. ID is deterministic for a given
// package name so the platform can dedupe repeated queries
type Entry struct {
	ID          string
	Title       string
	Description string

	// Text is the HTML message delivered when the row is picked
	Text string

	// URL is the canonical package page
	URL string
}

// PlaceholderKind distinguishes the informational batches
type PlaceholderKind uint8

// Placeholder kinds, one per user-visible failure or empty state
const (
	// PlaceholderPrompt asks the user to start typing
	PlaceholderPrompt PlaceholderKind = iota + 1

	// PlaceholderNoResults marks a search that matched nothing, as
	// opposed to one that never ran
	PlaceholderNoResults

	// PlaceholderUpstreamDown covers transport failures and 5xx after
	// retries were exhausted
	PlaceholderUpstreamDown

	// PlaceholderAPIError carries an upstream-reported error message
	PlaceholderAPIError

	// PlaceholderInternal is the generic recovery surface for anything
	// unexpected
	PlaceholderInternal
)

// String names the kind for log fields
func (k PlaceholderKind) String() string {
	switch k {
	case PlaceholderPrompt:
		return "prompt"
	case PlaceholderNoResults:
		return "no_results"
	case PlaceholderUpstreamDown:
		return "upstream_down"
	case PlaceholderAPIError:
		return "api_error"
	case PlaceholderInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Placeholder is the single informational row of an error/empty batch
type Placeholder struct {
	Kind  PlaceholderKind
	Title string
	Body  string
}

// Batch is the ordered answer to one inline event. Entries keep the
// upstream relevance order; len(Entries) never exceeds the platform
// per-answer maximum
type Batch struct {
	Entries []Entry

	// NextOffset is the opaque cursor the platform echoes back when the
	// user scrolls for more; empty means no further pages
	NextOffset string

	// CacheSeconds hints how long the platform may cache the answer
	CacheSeconds int

	// Suppressed batches deliver nothing; the platform keeps showing
	// whatever it already has
	Suppressed bool

	// Placeholder is set when the batch is informational rather than a
	// result list
	Placeholder *Placeholder
}

// IsPlaceholder reports whether the batch carries an informational row
// instead of results
func (b Batch) IsPlaceholder() bool { return b.Placeholder != nil }
