package service

import (
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"html"
	"strconv"
	"strings"
	"time"

	"aurbot/internal/adapters/aur"
	"aurbot/internal/core/sanitize"
	pstrings "aurbot/internal/platform/strings"
	dom "aurbot/internal/services/bot/domain"
)

// mapRecords converts one page of upstream records into an answer
// batch. Upstream relevance order is authoritative; nothing is
// re-sorted here. The offset cursor indexes into the already-truncated
// record sequence and is never forwarded upstream
func (s *Svc) mapRecords(records []aur.Package, ev dom.InlineEvent) dom.Batch {
	if len(records) == 0 {
		return s.placeholder(dom.PlaceholderNoResults, "No packages found", "No package matched the search")
	}

	offset := parseOffset(ev.Offset)
	if offset >= len(records) {
		// scrolled past the end; an empty page with no cursor stops the
		// platform from asking again
		return dom.Batch{CacheSeconds: s.cfg.CacheSeconds}
	}

	end := offset + s.cfg.PageSize
	if end > len(records) {
		end = len(records)
	}

	page := records[offset:end]
	entries := make([]dom.Entry, 0, len(page))
	for i := range page {
		entries = append(entries, s.mapRecord(page[i]))
	}

	next := ""
	if end < len(records) {
		next = strconv.Itoa(end)
	}

	return dom.Batch{
		Entries:      entries,
		NextOffset:   next,
		CacheSeconds: s.cfg.CacheSeconds,
	}
}

// mapRecord builds one entry. Records with missing optional fields are
// still mapped; they fall back to stand-in text, never get dropped
func (s *Svc) mapRecord(rec aur.Package) dom.Entry {
	return dom.Entry{
		ID:          entryID(rec.Name),
		Title:       strings.TrimSpace(rec.Name + " " + rec.Version),
		Description: sanitize.Display(pstrings.Deref(rec.Description), s.cfg.DescriptionLimit),
		Text:        card(rec),
		URL:         rec.PageURL(),
	}
}

// entryID returns the stable inline result id for a package name:
// FNV-1a 64 hex, identical across repeated queries so the platform can
// dedupe and cache entries
func entryID(name string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return hex.EncodeToString(h.Sum(nil))
}

// card renders the HTML detail message sent when the user picks an
// entry. Text fields are escaped; absent ones get stand-ins
func card(rec aur.Package) string {
	desc := sanitize.Clean(pstrings.DerefOr(rec.Description, "no description"))
	upstream := pstrings.DerefOr(rec.URL, "no URL available")
	maint := pstrings.DerefOr(rec.Maintainer, "orphan")

	var b strings.Builder
	fmt.Fprintf(&b, "Package Details: <b>%s <i>%s</i></b>\n\n",
		html.EscapeString(rec.Name), html.EscapeString(rec.Version))
	fmt.Fprintf(&b, "<b>AUR Page</b>: %s\n", rec.PageURL())
	fmt.Fprintf(&b, "<b>Git Clone URL</b>: %s\n\n", rec.GitURL())
	fmt.Fprintf(&b, "<b>Description</b>: <i>%s</i>\n", html.EscapeString(desc))
	fmt.Fprintf(&b, "<b>Upstream URL</b>: %s\n", html.EscapeString(upstream))
	fmt.Fprintf(&b, "<b>Maintainer</b>: <i>%s</i>\n", html.EscapeString(maint))
	fmt.Fprintf(&b, "<b>Votes</b>: <i>%d</i>\n", rec.NumVotes)
	fmt.Fprintf(&b, "<b>Popularity</b>: <i>%s</i>\n", strconv.FormatFloat(rec.Popularity, 'f', 2, 64))
	fmt.Fprintf(&b, "<b>First Submitted</b>: <i>%s</i>\n", formatDate(rec.FirstSubmitted))
	fmt.Fprintf(&b, "<b>Last Updated</b>: <i>%s</i>", formatDate(rec.LastModified))
	return b.String()
}

// formatDate renders a unix timestamp the way the AUR web UI does
func formatDate(unix int64) string {
	if unix <= 0 {
		return "unknown"
	}
	return time.Unix(unix, 0).UTC().Format("2006-01-02 15:04")
}

// parseOffset reads the platform cursor, defaulting to the first page
// on anything unparseable
func parseOffset(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
