package module

import (
	"time"

	"aurbot/internal/platform/config"
)

// Options controls the bot module. The env tags carry the full
// environment keys so validation failures point at the offending
// variable
type Options struct {
	Token string `env:"BOT_TOKEN" validate:"required"`

	AURBaseURL string        `env:"BOT_AUR_BASE_URL" validate:"omitempty,url"`
	UserAgent  string        `env:"BOT_USER_AGENT"`
	Timeout    time.Duration `env:"BOT_TIMEOUT"`
	MaxRetries int           `env:"BOT_MAX_RETRIES" validate:"min=0,max=5"`
	RetryBase  time.Duration `env:"BOT_RETRY_BASE"`

	// RecordCeiling bounds one upstream lookup; PageSize is how much of
	// it goes out per answer (the platform caps answers at 50)
	RecordCeiling int `env:"BOT_RECORD_CEILING" validate:"min=1,max=500"`
	PageSize      int `env:"BOT_PAGE_SIZE" validate:"min=1,max=50"`

	DescriptionLimit int `env:"BOT_DESCRIPTION_LIMIT" validate:"min=16,max=256"`
	ErrorTitleLimit  int `env:"BOT_ERROR_TITLE_LIMIT" validate:"min=16,max=128"`

	DebounceWindow time.Duration `env:"BOT_DEBOUNCE_WINDOW"`
	DebounceTTL    time.Duration `env:"BOT_DEBOUNCE_TTL"`

	CacheSeconds            int `env:"BOT_CACHE_SECONDS" validate:"min=0,max=3600"`
	PlaceholderCacheSeconds int `env:"BOT_PLACEHOLDER_CACHE_SECONDS" validate:"min=0,max=3600"`

	PollTimeout  time.Duration `env:"BOT_POLL_TIMEOUT"`
	HandleBudget time.Duration `env:"BOT_HANDLE_BUDGET"`
}

// FromConfig reads with BOT_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("BOT_")
	return Options{
		Token:                   c.MayString("TOKEN", ""),
		AURBaseURL:              c.MayString("AUR_BASE_URL", "https://aur.archlinux.org"),
		UserAgent:               c.MayString("USER_AGENT", "aurbot"),
		Timeout:                 c.MayDuration("TIMEOUT", 10*time.Second),
		MaxRetries:              c.MayInt("MAX_RETRIES", 2),
		RetryBase:               c.MayDuration("RETRY_BASE", 200*time.Millisecond),
		RecordCeiling:           c.MayInt("RECORD_CEILING", 50),
		PageSize:                c.MayInt("PAGE_SIZE", 50),
		DescriptionLimit:        c.MayInt("DESCRIPTION_LIMIT", 100),
		ErrorTitleLimit:         c.MayInt("ERROR_TITLE_LIMIT", 64),
		DebounceWindow:          c.MayDuration("DEBOUNCE_WINDOW", 300*time.Millisecond),
		DebounceTTL:             c.MayDuration("DEBOUNCE_TTL", 60*time.Second),
		CacheSeconds:            c.MayInt("CACHE_SECONDS", 60),
		PlaceholderCacheSeconds: c.MayInt("PLACEHOLDER_CACHE_SECONDS", 5),
		PollTimeout:             c.MayDuration("POLL_TIMEOUT", 10*time.Second),
		HandleBudget:            c.MayDuration("HANDLE_BUDGET", 15*time.Second),
	}
}
