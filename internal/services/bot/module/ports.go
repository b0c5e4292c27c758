package module

import (
	"aurbot/internal/adapters/aur"
	dom "aurbot/internal/services/bot/domain"
)

// Ports holds what the bot module exposes to the binary
type Ports struct {
	// Handler answers one inline event; exposed for tests and future
	// transports
	Handler dom.HandlerPort

	// Runner blocks on the platform event loop
	Runner dom.RunnerPort

	// AUR is the upstream client, exposed so the ops readiness probe
	// can ping it
	AUR *aur.Client
}
