// Package telegram delivers inline answers and chat replies over the
// Telegram Bot API long poller
package telegram

import (
	"context"
	"sync/atomic"
	"time"

	perr "aurbot/internal/platform/errors"
	"aurbot/internal/platform/logger"
	dom "aurbot/internal/services/bot/domain"

	tele "gopkg.in/telebot.v3"
)

const (
	defaultPollTimeout  = 10 * time.Second
	defaultHandleBudget = 15 * time.Second
)

// Options configures the runner
type Options struct {
	// Token authenticates the bot; absence is startup-fatal and checked
	// by the module before the runner is built
	Token string

	// PollTimeout is the long-poll wait passed to the platform
	PollTimeout time.Duration

	// HandleBudget bounds one inline event end to end; an answer that
	// misses it is useless because the platform expires the query id
	HandleBudget time.Duration
}

// Runner owns the long poller and adapts platform updates into domain
// events. One Run per process
type Runner struct {
	opts    Options
	handler dom.HandlerPort
	log     logger.Logger
	bot     atomic.Pointer[tele.Bot]
	now     func() time.Time
}

// New constructs a Runner; the bot itself connects lazily in Run so
// construction stays network-free
func New(opts Options, h dom.HandlerPort) *Runner {
	if h == nil {
		panic("telegram runner: handler is required")
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = defaultPollTimeout
	}
	if opts.HandleBudget <= 0 {
		opts.HandleBudget = defaultHandleBudget
	}
	return &Runner{
		opts:    opts,
		handler: h,
		log:     *logger.Named("telegram"),
		now:     time.Now,
	}
}

// Run connects, registers handlers, and polls until ctx is done. The
// poller dispatches each update on its own goroutine; HandleInline is
// safe for that
func (r *Runner) Run(ctx context.Context) error {
	b, err := tele.NewBot(tele.Settings{
		Token: r.opts.Token,
		Poller: &tele.LongPoller{
			Timeout:        r.opts.PollTimeout,
			AllowedUpdates: []string{"message", "inline_query"},
		},
		OnError: func(err error, _ tele.Context) {
			r.log.Error().Err(err).Msg("update handler failed")
		},
	})
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "telegram connect failed")
	}
	r.bot.Store(b)

	b.Handle(tele.OnQuery, r.onQuery)
	b.Handle("/start", r.onStart)
	b.Handle("/help", r.onHelp)

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.Start()
	}()
	r.log.Info().Str("username", b.Me.Username).Msg("telegram polling")

	select {
	case <-ctx.Done():
		b.Stop()
		<-done
		return ctx.Err()
	case <-done:
		// the poller never stops on its own unless Stop was called
		return perr.Unavailablef("telegram poller stopped")
	}
}

// Ping reports readiness: healthy once the poller is connected.
// Satisfies the ops Pinger surface
func (r *Runner) Ping(_ context.Context) error {
	if r.bot.Load() == nil {
		return perr.Unavailablef("telegram not connected")
	}
	return nil
}
