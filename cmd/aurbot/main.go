package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"aurbot/internal/platform/config"
	"aurbot/internal/platform/logger"
	phttp "aurbot/internal/platform/net/http"

	botmod "aurbot/internal/services/bot/module"
	"aurbot/internal/services/ops"
)

func main() {
	// seed the process env from .env when present; real env always wins
	_ = godotenv.Load()

	root := config.New()
	opsCfg := root.Prefix("OPS_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mod := botmod.New(botmod.Deps{Cfg: root}, botmod.Options{})
	ports := mod.Ports()
	l.Info().Str("module", mod.Name()).Msg("module wired")

	// ops server (reads OPS_PORT)
	srv := phttp.NewServer(root)
	ops.Mount(srv.Router(), ops.Deps{
		ServiceName: "aurbot",
		StartedAt:   time.Now().UTC(),
		AUR:         ports.AUR,
		Telegram:    ports.Runner,
	})
	phttp.MountProfiler(srv.Router(), "/debug", opsCfg.MayBool("PROFILER", false))

	go func() {
		if err := srv.Run(ctx); err != nil {
			l.Error().Err(err).Msg("ops http server stopped")
		}
	}()

	if err := ports.Runner.Run(ctx); err != nil && ctx.Err() == nil {
		l.Fatal().Err(err).Msg("bot runner failed")
	}
	l.Info().Msg("shutdown complete")
}
