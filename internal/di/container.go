package di

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/reshetovitsme/portfolio-feed/internal/modules/feed/builder"
	feedService "github.com/reshetovitsme/portfolio-feed/internal/modules/feed/service"
	postRepo "github.com/reshetovitsme/portfolio-feed/internal/modules/post/repository"
	postService "github.com/reshetovitsme/portfolio-feed/internal/modules/post/service"
	userRepo "github.com/reshetovitsme/portfolio-feed/internal/modules/user/repository"
	userService "github.com/reshetovitsme/portfolio-feed/internal/modules/user/service"
	"github.com/reshetovitsme/portfolio-feed/internal/shared/config"
	httpServer "github.com/reshetovitsme/portfolio-feed/internal/transport/http"
	telegramHandler "github.com/reshetovitsme/portfolio-feed/internal/transport/telegram"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

// Setup initializes the dependency injection container.
// The Telegram bot is registered only when a bot token is configured.
func Setup() (do.Injector, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, oops.With("context", "failed to load config").Wrap(err)
	}
	return SetupWithConfig(cfg), nil
}

// SetupWithConfig registers every service around an already loaded config
func SetupWithConfig(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)

	// Register Post Repository
	do.Provide(injector, func(i do.Injector) (postRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)

		if cfg.StorageDriver == config.StorageDriverPostgres {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			db, err := postRepo.OpenPostgres(ctx, cfg.DatabaseURL)
			if err != nil {
				return nil, oops.With("storage_driver", cfg.StorageDriver, "context", "failed to initialize post repository").Wrap(err)
			}
			repo := postRepo.NewPostgres(db)
			if err := repo.Ensure(ctx); err != nil {
				_ = repo.Close()
				return nil, err
			}
			return repo, nil
		}

		repo, err := postRepo.NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize post repository").Wrap(err)
		}
		return repo, nil
	})

	// Register User Repository
	do.Provide(injector, func(i do.Injector) (userRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo, err := userRepo.NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, oops.With("storage_path", cfg.StoragePath, "context", "failed to initialize user repository").Wrap(err)
		}
		return repo, nil
	})

	// Register Post Service
	do.Provide(injector, func(i do.Injector) (*postService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[postRepo.Repository](i)
		return postService.New(repo, time.Duration(cfg.ScheduleInterval)*time.Second), nil
	})

	// Register User Service
	do.Provide(injector, func(i do.Injector) (*userService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		repo := do.MustInvoke[userRepo.Repository](i)
		return userService.New(repo, cfg.AllowedUsers), nil
	})

	// Register Feed Builder
	do.Provide(injector, func(i do.Injector) (*builder.Builder, error) {
		return builder.New(), nil
	})

	// Register Feed Service
	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		posts := do.MustInvoke[*postService.Service](i)
		b := do.MustInvoke[*builder.Builder](i)
		return feedService.New(cfg, posts, b), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		feedService := do.MustInvoke[*feedService.Service](i)
		server := httpServer.New(cfg, feedService)
		server.SetLogger(slog.Default())
		return server, nil
	})

	if !cfg.TelegramEnabled() {
		return injector
	}

	// Register Telegram Handler
	do.Provide(injector, func(i do.Injector) (*telegramHandler.Handler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		postService := do.MustInvoke[*postService.Service](i)
		feedService := do.MustInvoke[*feedService.Service](i)
		userService := do.MustInvoke[*userService.Service](i)
		return telegramHandler.New(cfg, postService, feedService, userService), nil
	})

	// Register Bot (needs to be initialized after handlers are ready)
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)
		telegramHandler := do.MustInvoke[*telegramHandler.Handler](i)

		opts := []bot.Option{
			bot.WithDefaultHandler(telegramHandler.HandleUpdate),
			bot.WithServerURL(cfg.TelegramAPIURL),
		}

		b, err := bot.New(cfg.TelegramBotToken, opts...)
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}

		telegramHandler.RegisterCommands(b)
		return b, nil
	})

	return injector
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if server, err := do.Invoke[*httpServer.Server](injector); err == nil && server != nil {
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Failed to stop HTTP server", "error", err)
		}
	}

	if posts, err := do.Invoke[*postService.Service](injector); err == nil && posts != nil {
		posts.Stop()
	}

	if repo, err := do.Invoke[postRepo.Repository](injector); err == nil {
		if closer, ok := repo.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				return oops.With("context", "failed to close post repository").Wrap(err)
			}
		}
	}

	return nil
}
