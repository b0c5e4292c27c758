package domain

import (
	"context"

	"aurbot/internal/adapters/aur"
)

// HandlerPort turns one inline event into an answer batch. It never
// returns an error; every failure is recovered into a placeholder
type HandlerPort interface {
	HandleInline(ctx context.Context, ev InlineEvent) Batch
}

// RunnerPort owns the platform event loop and blocks until ctx is done
type RunnerPort interface {
	Run(ctx context.Context) error
}

// SearcherPort issues one upstream lookup per call (retries aside)
type SearcherPort interface {
	Search(ctx context.Context, term string, by aur.By) ([]aur.Package, error)
}
