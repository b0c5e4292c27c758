// Package service implements the inline query pipeline: debounce gate,
// upstream lookup, record mapping, and failure recovery
package service

import (
	"strings"
	"time"

	"aurbot/internal/core/debounce"
	"aurbot/internal/platform/logger"
	dom "aurbot/internal/services/bot/domain"
)

// Config controls the pipeline
type Config struct {
	// PageSize is the number of entries per answer page, capped by the
	// platform at 50
	PageSize int

	// DescriptionLimit caps result row descriptions, in runes
	DescriptionLimit int

	// ErrorTitleLimit caps upstream-provided error headlines, in runes
	ErrorTitleLimit int

	// CacheSeconds is the platform cache hint for result batches
	CacheSeconds int

	// PlaceholderCacheSeconds is the shorter hint for placeholders so
	// errors and empty states do not stick
	PlaceholderCacheSeconds int
}

// Deps are the collaborators injected by the module
type Deps struct {
	Searcher dom.SearcherPort
	Gate     *debounce.Gate
}

// Svc implements dom.HandlerPort
type Svc struct {
	cfg      Config
	searcher dom.SearcherPort
	gate     *debounce.Gate
	log      logger.Logger
	now      func() time.Time
}

// New constructs the service with defaults applied
func New(deps Deps, cfg Config) *Svc {
	if deps.Searcher == nil {
		panic("bot service: Deps.Searcher is required")
	}
	if deps.Gate == nil {
		deps.Gate = debounce.New(debounce.Options{})
	}
	if cfg.PageSize <= 0 || cfg.PageSize > 50 {
		cfg.PageSize = 50
	}
	if cfg.DescriptionLimit <= 0 {
		cfg.DescriptionLimit = 100
	}
	if cfg.ErrorTitleLimit <= 0 {
		cfg.ErrorTitleLimit = 64
	}
	if cfg.CacheSeconds <= 0 {
		cfg.CacheSeconds = 60
	}
	if cfg.PlaceholderCacheSeconds <= 0 {
		cfg.PlaceholderCacheSeconds = 5
	}
	return &Svc{
		cfg:      cfg,
		searcher: deps.Searcher,
		gate:     deps.Gate,
		log:      *logger.Named("bot"),
		now:      time.Now,
	}
}

// parseQuery splits raw inline text into the search term and mode. A
// "!m " prefix switches to maintainer search; bare sigils count as
// empty input and yield the type-to-search prompt
func parseQuery(text string) (string, dom.Mode) {
	raw := strings.TrimSpace(text)
	switch raw {
	case "", "!", "!m":
		return "", dom.ModeName
	}
	if rest, ok := strings.CutPrefix(raw, "!m "); ok {
		return strings.TrimSpace(rest), dom.ModeMaintainer
	}
	return raw, dom.ModeName
}
