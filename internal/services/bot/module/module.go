// Package module wires the inline search pipeline and exposes its ports
package module

import (
	"aurbot/internal/adapters/aur"
	"aurbot/internal/core/debounce"
	"aurbot/internal/platform/config"
	"aurbot/internal/platform/logger"
	"aurbot/internal/platform/validate"
	"aurbot/internal/services/bot/service"
	"aurbot/internal/services/bot/telegram"
)

// Deps are the module dependencies
type Deps struct {
	Cfg config.Conf
}

// Module builds and owns the bot pipeline
type Module struct {
	opts  Options
	ports Ports
}

// New constructs the bot module. Defaults come from env; non-zero
// override fields win. Invalid options are startup-fatal
func New(deps Deps, overrides Options) *Module {
	opts := FromConfig(deps.Cfg)
	mergeOptions(&opts, overrides)

	if err := validate.Struct(opts); err != nil {
		logger.Get().Panic().Err(err).Msg("bot options invalid")
	}

	client := aur.NewClient(aur.Options{
		BaseURL:       opts.AURBaseURL,
		UserAgent:     opts.UserAgent,
		Timeout:       opts.Timeout,
		MaxRetries:    opts.MaxRetries,
		RetryBase:     opts.RetryBase,
		RecordCeiling: opts.RecordCeiling,
	})

	gate := debounce.New(debounce.Options{
		Window: opts.DebounceWindow,
		TTL:    opts.DebounceTTL,
	})

	svc := service.New(
		service.Deps{Searcher: client, Gate: gate},
		service.Config{
			PageSize:                opts.PageSize,
			DescriptionLimit:        opts.DescriptionLimit,
			ErrorTitleLimit:         opts.ErrorTitleLimit,
			CacheSeconds:            opts.CacheSeconds,
			PlaceholderCacheSeconds: opts.PlaceholderCacheSeconds,
		},
	)

	runner := telegram.New(
		telegram.Options{
			Token:        opts.Token,
			PollTimeout:  opts.PollTimeout,
			HandleBudget: opts.HandleBudget,
		},
		svc,
	)

	m := &Module{opts: opts}
	m.ports = Ports{
		Handler: svc,
		Runner:  runner,
		AUR:     client,
	}
	return m
}

// Ports returns the module ports
func (m *Module) Ports() Ports { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "bot" }

// mergeOptions applies non-zero override fields onto opts
func mergeOptions(opts *Options, o Options) {
	if o.Token != "" {
		opts.Token = o.Token
	}
	if o.AURBaseURL != "" {
		opts.AURBaseURL = o.AURBaseURL
	}
	if o.UserAgent != "" {
		opts.UserAgent = o.UserAgent
	}
	if o.Timeout != 0 {
		opts.Timeout = o.Timeout
	}
	if o.MaxRetries != 0 {
		opts.MaxRetries = o.MaxRetries
	}
	if o.RetryBase != 0 {
		opts.RetryBase = o.RetryBase
	}
	if o.RecordCeiling != 0 {
		opts.RecordCeiling = o.RecordCeiling
	}
	if o.PageSize != 0 {
		opts.PageSize = o.PageSize
	}
	if o.DescriptionLimit != 0 {
		opts.DescriptionLimit = o.DescriptionLimit
	}
	if o.ErrorTitleLimit != 0 {
		opts.ErrorTitleLimit = o.ErrorTitleLimit
	}
	if o.DebounceWindow != 0 {
		opts.DebounceWindow = o.DebounceWindow
	}
	if o.DebounceTTL != 0 {
		opts.DebounceTTL = o.DebounceTTL
	}
	if o.CacheSeconds != 0 {
		opts.CacheSeconds = o.CacheSeconds
	}
	if o.PlaceholderCacheSeconds != 0 {
		opts.PlaceholderCacheSeconds = o.PlaceholderCacheSeconds
	}
	if o.PollTimeout != 0 {
		opts.PollTimeout = o.PollTimeout
	}
	if o.HandleBudget != 0 {
		opts.HandleBudget = o.HandleBudget
	}
}
