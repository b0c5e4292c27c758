package service

import (
	"context"
	"runtime/debug"

	"aurbot/internal/adapters/aur"
	"aurbot/internal/core/sanitize"
	perr "aurbot/internal/platform/errors"
	"aurbot/internal/platform/logger"
	dom "aurbot/internal/services/bot/domain"
)

// HandleInline turns one inline event into an answer batch. Every
// failure is recovered here; nothing propagates to the event loop
func (s *Svc) HandleInline(ctx context.Context, ev dom.InlineEvent) (batch dom.Batch) {
	log := logger.C(ctx)

	defer func() {
		if v := recover(); v != nil {
			log.Error().Interface("panic", v).Msgf("inline handler panic recovered\n%s", debug.Stack())
			batch = s.placeholder(dom.PlaceholderInternal,
				"Something went wrong", "Unexpected error while searching, try again")
		}
	}()

	term, mode := parseQuery(ev.Text)
	if term == "" {
		return s.placeholder(dom.PlaceholderPrompt, "Type to search packages on AUR", "")
	}

	at := ev.At
	if at.IsZero() {
		at = s.now()
	}
	if !s.gate.ShouldDispatch(ev.RequesterID, ev.Text, at) {
		log.Debug().Str("term", term).Msg("debounced, keeping previous answer")
		return dom.Batch{Suppressed: true}
	}

	records, err := s.searcher.Search(ctx, term, searchBy(mode))
	if err != nil {
		return s.recoverSearch(ctx, term, err)
	}

	// The gate may have dispatched a newer term for this requester while
	// the call was in flight; a stale answer must not replace it
	if cur, ok := s.gate.Current(ev.RequesterID); ok && cur != ev.Text {
		log.Debug().Str("term", term).Str("current", cur).Msg("superseded in flight, dropping")
		return dom.Batch{Suppressed: true}
	}

	b := s.mapRecords(records, ev)
	log.Info().
		Str("term", term).
		Str("mode", string(mode)).
		Int("records", len(records)).
		Int("entries", len(b.Entries)).
		Str("next_offset", b.NextOffset).
		Msg("inline query answered")
	return b
}

// recoverSearch converts a client error into the matching placeholder
func (s *Svc) recoverSearch(ctx context.Context, term string, err error) dom.Batch {
	log := logger.C(ctx)
	switch perr.CodeOf(err) {
	case perr.ErrorCodeAPI:
		// upstream replied with a well-formed error payload; show its
		// message after display hygiene
		msg := sanitize.Display(perr.MessageOf(err), s.cfg.ErrorTitleLimit)
		if msg == "" {
			msg = "AUR rejected the search"
		}
		log.Warn().Err(err).Str("term", term).Msg("aur api error")
		return s.placeholder(dom.PlaceholderAPIError, msg, "AUR rejected the search, adjust the term")
	case perr.ErrorCodeUnavailable, perr.ErrorCodeTooManyRequests:
		log.Warn().Err(err).Str("term", term).Msg("aur unavailable")
		return s.placeholder(dom.PlaceholderUpstreamDown, "AUR is unavailable", "Search failed upstream, try again later")
	default:
		log.Error().Err(err).Str("term", term).Msg("inline search failed")
		return s.placeholder(dom.PlaceholderInternal, "Something went wrong", "Unexpected error while searching, try again")
	}
}

// placeholder builds an informational batch with the short cache hint
func (s *Svc) placeholder(kind dom.PlaceholderKind, title, body string) dom.Batch {
	return dom.Batch{
		CacheSeconds: s.cfg.PlaceholderCacheSeconds,
		Placeholder:  &dom.Placeholder{Kind: kind, Title: title, Body: body},
	}
}

// searchBy maps the parsed mode onto the RPC search dimension
func searchBy(m dom.Mode) aur.By {
	if m == dom.ModeMaintainer {
		return aur.ByMaintainer
	}
	return aur.ByName
}
