package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/reshetovitsme/portfolio-feed/internal/di"
	postService "github.com/reshetovitsme/portfolio-feed/internal/modules/post/service"
	"github.com/reshetovitsme/portfolio-feed/internal/shared/config"
	httpServer "github.com/reshetovitsme/portfolio-feed/internal/transport/http"
	"github.com/samber/do/v2"
	slogmulti "github.com/samber/slog-multi"
)

func main() {
	// Setup dependency injection
	injector, err := di.Setup()
	if err != nil {
		slog.Error("Failed to setup dependency injection", "error", err)
		os.Exit(1)
	}

	cfg := do.MustInvoke[*config.Config](injector)
	setupLogging(cfg)

	defer func() {
		if err := di.Shutdown(injector); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	posts, err := do.Invoke[*postService.Service](injector)
	if err != nil {
		slog.Error("Failed to initialize post service", "error", err)
		return
	}
	server := do.MustInvoke[*httpServer.Server](injector)

	// Start scheduled publishing
	posts.Start(ctx)

	// Start HTTP server
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("Failed to start HTTP server", "error", err)
			cancel()
		}
	}()

	if cfg.TelegramEnabled() {
		b, err := do.Invoke[*bot.Bot](injector)
		if err != nil {
			slog.Error("Failed to initialize telegram bot", "error", err)
			return
		}
		go b.Start(ctx)
		slog.Info("Telegram admin bot started")
	}

	slog.Info("Application started", "port", cfg.HTTPPort, "env", cfg.AppEnv, "storage", cfg.StorageDriver)
	slog.Info("Press Ctrl+C to stop")

	<-ctx.Done()
	slog.Info("Shutting down...")
}

// setupLogging fans out to text on stdout and errors as JSON on stderr
func setupLogging(cfg *config.Config) {
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})
	jsonHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	logger := slog.New(slogmulti.Fanout(textHandler, jsonHandler))
	slog.SetDefault(logger)
}
