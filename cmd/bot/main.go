package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/reshetovitsme/discord-thread-digest/internal/di"
	"github.com/reshetovitsme/discord-thread-digest/internal/shared/config"
	discordTransport "github.com/reshetovitsme/discord-thread-digest/internal/transport/discord"
	httpServer "github.com/reshetovitsme/discord-thread-digest/internal/transport/http"
	"github.com/samber/do/v2"
	slogmulti "github.com/samber/slog-multi"
)

func main() {
	// Text logs to stdout, errors also as JSON to stderr
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	jsonHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	logger := slog.New(slogmulti.Fanout(textHandler, jsonHandler))
	slog.SetDefault(logger)

	injector, err := di.Setup()
	if err != nil {
		slog.Error("Failed to setup dependency injection", "error", err)
		os.Exit(1)
	}

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if cfg.DebugMode || cfg.AppEnv.Verbose() {
		level.Set(slog.LevelDebug)
	}

	gateway := do.MustInvoke[*discordTransport.Gateway](injector)
	server := do.MustInvoke[*httpServer.Server](injector)

	if err := gateway.Open(); err != nil {
		slog.Error("Failed to connect to Discord", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := di.Shutdown(injector); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	if server.Enabled() {
		go func() {
			if err := server.Start(); err != nil {
				slog.Error("HTTP server stopped", "error", err)
			}
		}()
	}

	slog.Info("Application started", "guild_id", cfg.GuildID, "env", cfg.AppEnv.String(), "port", cfg.HTTPPort)
	slog.Info("Press Ctrl+C to stop")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	<-ctx.Done()
	slog.Info("Shutting down...")
}
