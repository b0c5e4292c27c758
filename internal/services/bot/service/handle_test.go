package service

import (
	"context"
	stderrs "errors"
	"testing"
	"time"

	"aurbot/internal/adapters/aur"
	"aurbot/internal/core/debounce"
	perr "aurbot/internal/platform/errors"
	dom "aurbot/internal/services/bot/domain"
)

// stubSearcher is a canned dom.SearcherPort
type stubSearcher struct {
	records []aur.Package
	err     error
	fn      func(ctx context.Context, term string, by aur.By) ([]aur.Package, error)

	calls    int
	lastTerm string
	lastBy   aur.By
}

func (s *stubSearcher) Search(ctx context.Context, term string, by aur.By) ([]aur.Package, error) {
	s.calls++
	s.lastTerm, s.lastBy = term, by
	if s.fn != nil {
		return s.fn(ctx, term, by)
	}
	return s.records, s.err
}

func sp(s string) *string { return &s }

func pkg(name string) aur.Package {
	return aur.Package{
		ID:             1,
		Name:           name,
		PackageBase:    name,
		Version:        "1.0-1",
		Description:    sp("desc for " + name),
		URL:            sp("https://example.org/" + name),
		NumVotes:       10,
		Popularity:     0.42,
		Maintainer:     sp("someone"),
		FirstSubmitted: 1600000000,
		LastModified:   1700000000,
	}
}

func ev(text string) dom.InlineEvent {
	return dom.InlineEvent{
		QueryID:     "q1",
		RequesterID: 1001,
		Text:        text,
		At:          time.Unix(1_700_000_000, 0),
	}
}

func TestHandleInlinePromptStates(t *testing.T) {
	t.Parallel()

	st := &stubSearcher{}
	s := New(Deps{Searcher: st}, Config{})

	for _, text := range []string{"", "   ", "!", "!m", " !m "} {
		b := s.HandleInline(context.Background(), ev(text))
		if !b.IsPlaceholder() || b.Placeholder.Kind != dom.PlaceholderPrompt {
			t.Fatalf("HandleInline(%q) = %+v, want prompt placeholder", text, b)
		}
		if b.Placeholder.Title != "Type to search packages on AUR" {
			t.Fatalf("prompt title = %q", b.Placeholder.Title)
		}
		if b.CacheSeconds != 5 {
			t.Fatalf("prompt cache = %d, want 5", b.CacheSeconds)
		}
	}
	if st.calls != 0 {
		t.Fatalf("searcher called %d times for empty input", st.calls)
	}
}

func TestHandleInlineSuccess(t *testing.T) {
	t.Parallel()

	st := &stubSearcher{records: []aur.Package{pkg("alpha"), pkg("beta"), pkg("gamma")}}
	s := New(Deps{Searcher: st}, Config{})

	b := s.HandleInline(context.Background(), ev("alp"))
	if b.Suppressed || b.IsPlaceholder() {
		t.Fatalf("batch = %+v, want plain results", b)
	}
	if len(b.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(b.Entries))
	}
	for i, want := range []string{"alpha", "beta", "gamma"} {
		e := b.Entries[i]
		if e.Title != want+" 1.0-1" {
			t.Fatalf("entries[%d].Title = %q", i, e.Title)
		}
		if e.ID == "" || e.Text == "" || e.URL == "" {
			t.Fatalf("entries[%d] has empty fields: %+v", i, e)
		}
	}
	if b.NextOffset != "" {
		t.Fatalf("NextOffset = %q, want empty for a single page", b.NextOffset)
	}
	if b.CacheSeconds != 60 {
		t.Fatalf("CacheSeconds = %d, want 60", b.CacheSeconds)
	}
	if st.calls != 1 || st.lastTerm != "alp" || st.lastBy != aur.ByName {
		t.Fatalf("searcher saw calls=%d term=%q by=%q", st.calls, st.lastTerm, st.lastBy)
	}
}

func TestHandleInlineMaintainerMode(t *testing.T) {
	t.Parallel()

	st := &stubSearcher{records: []aur.Package{pkg("alpha")}}
	s := New(Deps{Searcher: st}, Config{})

	b := s.HandleInline(context.Background(), ev("!m someone"))
	if b.IsPlaceholder() || len(b.Entries) != 1 {
		t.Fatalf("batch = %+v", b)
	}
	if st.lastTerm != "someone" || st.lastBy != aur.ByMaintainer {
		t.Fatalf("searcher saw term=%q by=%q", st.lastTerm, st.lastBy)
	}
}

func TestHandleInlineDebounce(t *testing.T) {
	t.Parallel()

	st := &stubSearcher{records: []aur.Package{pkg("yay")}}
	s := New(Deps{
		Searcher: st,
		Gate:     debounce.New(debounce.Options{Window: 300 * time.Millisecond}),
	}, Config{})

	base := time.Unix(1_700_000_000, 0)
	mk := func(text string, at time.Time) dom.InlineEvent {
		e := ev(text)
		e.At = at
		return e
	}

	// first keystroke dispatches
	if b := s.HandleInline(context.Background(), mk("y", base)); b.Suppressed {
		t.Fatalf("first event suppressed")
	}
	// rapid extension inside the window is suppressed
	b := s.HandleInline(context.Background(), mk("ya", base.Add(100*time.Millisecond)))
	if !b.Suppressed {
		t.Fatalf("rapid extension not suppressed: %+v", b)
	}
	if st.calls != 1 {
		t.Fatalf("searcher calls = %d, want 1", st.calls)
	}
	// a pause ends the burst
	if b := s.HandleInline(context.Background(), mk("yay", base.Add(400*time.Millisecond))); b.Suppressed {
		t.Fatalf("post-pause event suppressed")
	}
	if st.calls != 2 {
		t.Fatalf("searcher calls = %d, want 2", st.calls)
	}
	// a different term inside the window is not an extension
	if b := s.HandleInline(context.Background(), mk("polybar", base.Add(450*time.Millisecond))); b.Suppressed {
		t.Fatalf("distinct term suppressed")
	}
	if st.calls != 3 {
		t.Fatalf("searcher calls = %d, want 3", st.calls)
	}
}

func TestHandleInlineDropsStaleAnswer(t *testing.T) {
	t.Parallel()

	st := &stubSearcher{}
	s := New(Deps{Searcher: st}, Config{})

	e := ev("y")
	// while the search for "y" is in flight the requester types ahead
	// and the gate dispatches "yay"
	st.fn = func(context.Context, string, aur.By) ([]aur.Package, error) {
		s.gate.ShouldDispatch(e.RequesterID, "yay", e.At.Add(time.Second))
		return []aur.Package{pkg("y")}, nil
	}

	b := s.HandleInline(context.Background(), e)
	if !b.Suppressed {
		t.Fatalf("stale answer not dropped: %+v", b)
	}
}

func TestHandleInlineUpstreamDown(t *testing.T) {
	t.Parallel()

	for _, err := range []error{
		perr.Unavailablef("aur transient server error 502"),
		perr.TooManyRequestsf("aur rate limited"),
	} {
		st := &stubSearcher{err: err}
		s := New(Deps{Searcher: st}, Config{})

		b := s.HandleInline(context.Background(), ev("yay"))
		if !b.IsPlaceholder() || b.Placeholder.Kind != dom.PlaceholderUpstreamDown {
			t.Fatalf("batch for %v = %+v, want upstream down placeholder", err, b)
		}
		if b.Placeholder.Title != "AUR is unavailable" {
			t.Fatalf("title = %q", b.Placeholder.Title)
		}
		if b.CacheSeconds != 5 {
			t.Fatalf("placeholder cache = %d, want 5", b.CacheSeconds)
		}
	}
}

func TestHandleInlineAPIErrorShowsUpstreamMessage(t *testing.T) {
	t.Parallel()

	st := &stubSearcher{err: perr.APIErrf("Too many package results.")}
	s := New(Deps{Searcher: st}, Config{})

	b := s.HandleInline(context.Background(), ev("a"))
	if !b.IsPlaceholder() || b.Placeholder.Kind != dom.PlaceholderAPIError {
		t.Fatalf("batch = %+v, want api error placeholder", b)
	}
	if b.Placeholder.Title != "Too many package results." {
		t.Fatalf("title = %q", b.Placeholder.Title)
	}
}

func TestHandleInlineAPIErrorSanitized(t *testing.T) {
	t.Parallel()

	st := &stubSearcher{err: perr.APIErrf("abc\x00def ghijklmnop")}
	s := New(Deps{Searcher: st}, Config{ErrorTitleLimit: 10})

	b := s.HandleInline(context.Background(), ev("a"))
	if got, want := b.Placeholder.Title, "abcdef gh…"; got != want {
		t.Fatalf("title = %q, want %q", got, want)
	}
}

func TestHandleInlineUnknownErrorIsInternal(t *testing.T) {
	t.Parallel()

	st := &stubSearcher{err: stderrs.New("boom")}
	s := New(Deps{Searcher: st}, Config{})

	b := s.HandleInline(context.Background(), ev("yay"))
	if !b.IsPlaceholder() || b.Placeholder.Kind != dom.PlaceholderInternal {
		t.Fatalf("batch = %+v, want internal placeholder", b)
	}
}

func TestHandleInlineRecoversPanic(t *testing.T) {
	t.Parallel()

	st := &stubSearcher{fn: func(context.Context, string, aur.By) ([]aur.Package, error) {
		panic("mapper exploded")
	}}
	s := New(Deps{Searcher: st}, Config{})

	b := s.HandleInline(context.Background(), ev("yay"))
	if !b.IsPlaceholder() || b.Placeholder.Kind != dom.PlaceholderInternal {
		t.Fatalf("batch = %+v, want internal placeholder after panic", b)
	}
	if b.Placeholder.Title != "Something went wrong" {
		t.Fatalf("title = %q", b.Placeholder.Title)
	}
}

func TestHandleInlineNoResults(t *testing.T) {
	t.Parallel()

	st := &stubSearcher{}
	s := New(Deps{Searcher: st}, Config{})

	b := s.HandleInline(context.Background(), ev("definitely-not-a-package"))
	if !b.IsPlaceholder() || b.Placeholder.Kind != dom.PlaceholderNoResults {
		t.Fatalf("batch = %+v, want no results placeholder", b)
	}
	if b.Placeholder.Title != "No packages found" {
		t.Fatalf("title = %q", b.Placeholder.Title)
	}
}
