// Package debounce suppresses upstream lookups while a requester is
// still typing out the same term
package debounce

import (
	"strings"
	"sync"
	"time"
)

const (
	defaultWindow = 300 * time.Millisecond
	defaultTTL    = 60 * time.Second
)

// Options configures a Gate
type Options struct {
	// Window is the interval within which a prefix-extension of the
	// requester's previous term is suppressed
	Window time.Duration

	// TTL is the idle age after which a requester's entry is evicted
	TTL time.Duration
}

type entry struct {
	term string
	at   time.Time
}

// Gate tracks the last dispatched term per requester. It is the only
// shared mutable state in the query pipeline; every access goes
// through the mutex
type Gate struct {
	mu      sync.Mutex
	window  time.Duration
	ttl     time.Duration
	entries map[int64]entry
	swept   time.Time
}

// New constructs a Gate with defaults applied
func New(opts Options) *Gate {
	if opts.Window <= 0 {
		opts.Window = defaultWindow
	}
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	return &Gate{
		window:  opts.Window,
		ttl:     opts.TTL,
		entries: make(map[int64]entry),
	}
}

// ShouldDispatch reports whether the requester's term warrants an
// upstream call at now. Dispatched terms are recorded; suppressed
// calls leave the recorded state untouched so a typing burst is
// measured against the last term that actually went out
func (g *Gate) ShouldDispatch(requesterID int64, term string, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.sweep(now)

	prev, ok := g.entries[requesterID]
	if ok && now.Sub(prev.at) < g.window && extends(prev.term, term) {
		return false
	}
	g.entries[requesterID] = entry{term: term, at: now}
	return true
}

// Current returns the requester's last dispatched term
func (g *Gate) Current(requesterID int64) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.entries[requesterID]
	if !ok {
		return "", false
	}
	return e.term, true
}

// Len reports how many requesters are currently tracked
func (g *Gate) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}

// sweep drops entries idle past the TTL, at most once per TTL so a
// busy gate does not rescan the map on every call
func (g *Gate) sweep(now time.Time) {
	if now.Sub(g.swept) < g.ttl {
		return
	}
	for id, e := range g.entries {
		if now.Sub(e.at) >= g.ttl {
			delete(g.entries, id)
		}
	}
	g.swept = now
}

// extends reports whether cur is a strict prefix-extension of prev,
// i.e. the requester kept typing the same term
func extends(prev, cur string) bool {
	return len(cur) > len(prev) && strings.HasPrefix(cur, prev)
}
