package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	summaryDomain "github.com/reshetovitsme/discord-thread-digest/internal/modules/summary/domain"
	summaryService "github.com/reshetovitsme/discord-thread-digest/internal/modules/summary/service"
	userDomain "github.com/reshetovitsme/discord-thread-digest/internal/modules/user/domain"
	userService "github.com/reshetovitsme/discord-thread-digest/internal/modules/user/service"
	"github.com/reshetovitsme/discord-thread-digest/internal/shared/config"
	"github.com/reshetovitsme/discord-thread-digest/internal/shared/diagnostics"
	sharedErrors "github.com/reshetovitsme/discord-thread-digest/internal/shared/errors"
	"github.com/samber/oops"
)

// Intents needed to see guild channels and read command messages.
const Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

// Resolver looks up guild and channel handles. *discordgo.Session implements it.
type Resolver interface {
	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// Gateway wires the Discord session events to the summary pass and commands
type Gateway struct {
	cfg       *config.Config
	session   *discordgo.Session
	sender    *Sender
	summaries *summaryService.Service
	router    *Router
	conn      atomic.Pointer[summaryDomain.Connection]
	ctx       context.Context
	cancel    context.CancelFunc
}

// New creates a new gateway and registers its commands
func New(cfg *config.Config, session *discordgo.Session, sender *Sender, summaries *summaryService.Service, users *userService.Service) *Gateway {
	ctx, cancel := context.WithCancel(context.Background())
	g := &Gateway{
		cfg:       cfg,
		session:   session,
		sender:    sender,
		summaries: summaries,
		router:    NewRouter(cfg.CommandPrefix, users),
		ctx:       ctx,
		cancel:    cancel,
	}

	g.router.Handle("threads", "post the thread digest to the output channel", g.handleThreads)
	g.router.Handle("help", "show this help message", g.handleHelp)

	return g
}

// Open registers event handlers and connects to the gateway
func (g *Gateway) Open() error {
	g.session.Identify.Intents = Intents
	g.session.AddHandler(g.onReady)
	g.session.AddHandler(g.onMessageCreate)

	if err := g.session.Open(); err != nil {
		return oops.With("context", "failed to open discord session").Wrap(err)
	}
	return nil
}

// Close stops in-flight work and disconnects
func (g *Gateway) Close() error {
	g.cancel()
	return g.session.Close()
}

// Connection returns the handles of the current connection
func (g *Gateway) Connection() (*summaryDomain.Connection, error) {
	conn := g.conn.Load()
	if conn == nil {
		return nil, sharedErrors.ErrNotConnected
	}
	return conn, nil
}

func (g *Gateway) onReady(s *discordgo.Session, r *discordgo.Ready) {
	botUser := ""
	if r.User != nil {
		botUser = r.User.String()
	}

	conn, err := Connect(g.ctx, s, g.cfg, g.sender, botUser, time.Now())
	if err != nil {
		slog.Error("Failed to resolve connection handles", "guild_id", g.cfg.GuildID, "error", err)
		return
	}
	g.conn.Store(conn)

	slog.Info("Connected to Discord", "user", botUser, "guild", conn.GuildName)
	conn.Diagnostics.Logf(g.ctx, "Bot connected as %s", botUser)

	if _, err := g.summaries.Run(g.ctx, conn); err != nil {
		slog.Error("Thread digest failed", "guild_id", conn.GuildID, "error", err)
	}
}

func (g *Gateway) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	conn := g.conn.Load()
	if conn == nil || m.GuildID != conn.GuildID {
		return
	}

	author := userDomain.User{ID: m.Author.ID, Username: m.Author.String(), Bot: m.Author.Bot}
	inv, ok := g.router.Parse(m.Content, author, m.ChannelID)
	if !ok {
		return
	}

	if err := g.router.Dispatch(g.ctx, conn, inv); err != nil {
		if errors.Is(err, sharedErrors.ErrUnknownCmd) {
			slog.Debug("Ignoring unknown command", "command", inv.Name, "author", author.String())
			return
		}
		slog.Error("Command dispatch failed", "command", inv.Name, "error", err)
	}
}

func (g *Gateway) handleThreads(ctx context.Context, conn *summaryDomain.Connection, inv Invocation) error {
	digest, err := g.summaries.Run(ctx, conn)
	if err != nil {
		return err
	}
	reply := fmt.Sprintf("Posted %d channel summaries to <#%s>", digest.Published, conn.OutputChannelID)
	if digest.Failed > 0 {
		reply += fmt.Sprintf(" (%d failed)", digest.Failed)
	}
	return g.sender.SendText(ctx, inv.ChannelID, reply)
}

func (g *Gateway) handleHelp(ctx context.Context, _ *summaryDomain.Connection, inv Invocation) error {
	return g.sender.SendText(ctx, inv.ChannelID, g.router.Help())
}

// Connect resolves the configured guild, output channel and, in debug mode,
// the log channel into a connection value. An unreachable log channel falls
// back to console diagnostics.
func Connect(ctx context.Context, resolver Resolver, cfg *config.Config, sender diagnostics.Sender, botUser string, now time.Time) (*summaryDomain.Connection, error) {
	guild, err := resolver.Guild(cfg.GuildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, oops.With("guild_id", cfg.GuildID, "context", "failed to resolve guild").Wrap(err)
	}

	output, err := resolver.Channel(cfg.OutputChannel, discordgo.WithContext(ctx))
	if err != nil {
		return nil, oops.With("channel_id", cfg.OutputChannel, "context", "failed to resolve output channel").Wrap(err)
	}

	logChannelID := ""
	if cfg.DebugMode && cfg.LogChannel != "" {
		if logChannel, err := resolver.Channel(cfg.LogChannel, discordgo.WithContext(ctx)); err == nil {
			logChannelID = logChannel.ID
		} else {
			slog.Warn("Log channel unavailable, diagnostics go to console", "channel_id", cfg.LogChannel, "error", err)
		}
	}

	var diagSender diagnostics.Sender
	if logChannelID != "" {
		diagSender = sender
	}

	return &summaryDomain.Connection{
		GuildID:         guild.ID,
		GuildName:       guild.Name,
		OutputChannelID: output.ID,
		LogChannelID:    logChannelID,
		BotUser:         botUser,
		ConnectedAt:     now,
		Diagnostics:     diagnostics.New(cfg.DebugMode, logChannelID, diagSender, slog.Default()),
	}, nil
}
