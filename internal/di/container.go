package di

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	channelRepo "github.com/reshetovitsme/discord-thread-digest/internal/modules/channel/repository"
	channelService "github.com/reshetovitsme/discord-thread-digest/internal/modules/channel/service"
	feedService "github.com/reshetovitsme/discord-thread-digest/internal/modules/feed/service"
	messageService "github.com/reshetovitsme/discord-thread-digest/internal/modules/message/service"
	summaryService "github.com/reshetovitsme/discord-thread-digest/internal/modules/summary/service"
	userService "github.com/reshetovitsme/discord-thread-digest/internal/modules/user/service"
	"github.com/reshetovitsme/discord-thread-digest/internal/shared/config"
	discordTransport "github.com/reshetovitsme/discord-thread-digest/internal/transport/discord"
	httpServer "github.com/reshetovitsme/discord-thread-digest/internal/transport/http"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Discord session
	do.Provide(injector, func(i do.Injector) (*discordgo.Session, error) {
		cfg := do.MustInvoke[*config.Config](i)
		session, err := discordgo.New("Bot " + cfg.Token)
		if err != nil {
			return nil, oops.With("context", "failed to create discord session").Wrap(err)
		}
		return session, nil
	})

	do.Provide(injector, func(i do.Injector) (*discordTransport.Sender, error) {
		return discordTransport.NewSender(do.MustInvoke[*discordgo.Session](i)), nil
	})

	// Register Channel Repository
	do.Provide(injector, func(i do.Injector) (channelRepo.Repository, error) {
		return channelRepo.NewDiscord(do.MustInvoke[*discordgo.Session](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*channelService.Service, error) {
		return channelService.New(do.MustInvoke[channelRepo.Repository](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*messageService.Publisher, error) {
		return messageService.NewPublisher(do.MustInvoke[*discordTransport.Sender](i)), nil
	})

	// Register Summary pipeline
	do.Provide(injector, func(i do.Injector) (*summaryService.Classifier, error) {
		cfg := do.MustInvoke[*config.Config](i)
		channels := do.MustInvoke[*channelService.Service](i)
		return summaryService.NewClassifier(channels, cfg.SummaryEmbeds), nil
	})

	do.Provide(injector, func(i do.Injector) (*summaryService.Builder, error) {
		channels := do.MustInvoke[*channelService.Service](i)
		classifier := do.MustInvoke[*summaryService.Classifier](i)
		return summaryService.NewBuilder(channels, classifier), nil
	})

	do.Provide(injector, func(i do.Injector) (*summaryService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		builder := do.MustInvoke[*summaryService.Builder](i)
		publisher := do.MustInvoke[*messageService.Publisher](i)
		return summaryService.New(builder, publisher, cfg.RecentWindow), nil
	})

	do.Provide(injector, func(i do.Injector) (*userService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return userService.New(cfg.AllowedUsers), nil
	})

	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		return feedService.New(do.MustInvoke[*summaryService.Service](i)), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		feeds := do.MustInvoke[*feedService.Service](i)
		summaries := do.MustInvoke[*summaryService.Service](i)
		server := httpServer.New(cfg, feeds, summaries)
		server.SetLogger(slog.Default())
		return server, nil
	})

	// Register Gateway
	do.Provide(injector, func(i do.Injector) (*discordTransport.Gateway, error) {
		cfg := do.MustInvoke[*config.Config](i)
		session := do.MustInvoke[*discordgo.Session](i)
		sender := do.MustInvoke[*discordTransport.Sender](i)
		summaries := do.MustInvoke[*summaryService.Service](i)
		users := do.MustInvoke[*userService.Service](i)
		return discordTransport.New(cfg, session, sender, summaries, users), nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if server, err := do.Invoke[*httpServer.Server](injector); err == nil && server != nil {
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Error stopping HTTP server", "error", err)
		}
	}

	if gateway, err := do.Invoke[*discordTransport.Gateway](injector); err == nil && gateway != nil {
		if err := gateway.Close(); err != nil {
			return oops.With("context", "failed to close discord gateway").Wrap(err)
		}
	}

	return nil
}
