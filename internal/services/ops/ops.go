// Package ops serves the operational endpoints used by deployment
// probes. This is plumbing surface, not product API
package ops

import (
	"context"
	"time"

	phttp "aurbot/internal/platform/net/http"
	mw "aurbot/internal/platform/net/middleware"
)

// Pinger is satisfied by collaborators that expose a readiness probe
type Pinger interface {
	Ping(context.Context) error
}

// Deps are the handler dependencies. AUR and Telegram are probed when
// they satisfy Pinger; nil ones are reported as skipped rather than
// failing readiness
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	AUR         any
	Telegram    any
}

// Mount attaches the ops middleware stack and the meta routes to r.
// Middleware must be attached before any route, hence the single entry
// point
func Mount(r phttp.Router, d Deps) {
	r.Use(mw.Defaults()...)
	r.Use(mw.AccessLogZerolog(mw.AccessLogOptions{Slow: 2 * time.Second}))
	r.Use(mw.CORS(mw.CORSOptions{AllowedOrigins: []string{"*"}}))
	r.Use(mw.Heartbeat("/ping"))

	Register(r, d)
}

// Register mounts the meta routes bare; tests use this to skip the
// middleware stack
func Register(r phttp.Router, d Deps) {
	h := &handlers{deps: d}
	r.Route("/meta", func(rr phttp.Router) {
		phttp.GetJSON(rr, "/health", h.health)
		phttp.GetJSON(rr, "/ready", h.ready)
		phttp.GetJSON(rr, "/version", h.version)
		phttp.GetJSON(rr, "/service", h.service)
	})
}
