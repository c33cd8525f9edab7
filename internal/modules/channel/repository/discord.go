package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/reshetovitsme/discord-thread-digest/internal/modules/channel/domain"
	messageDomain "github.com/reshetovitsme/discord-thread-digest/internal/modules/message/domain"
	sharedErrors "github.com/reshetovitsme/discord-thread-digest/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// archivedPageSize is the maximum page size Discord accepts for archived threads.
const archivedPageSize = 100

// Discord implements channel.Repository on top of a discordgo session
type Discord struct {
	session *discordgo.Session
}

// NewDiscord creates a Discord-backed channel repository
func NewDiscord(session *discordgo.Session) Repository {
	return &Discord{session: session}
}

func (r *Discord) GuildChannels(ctx context.Context, guildID string) ([]*domain.Channel, error) {
	channels, err := r.session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, oops.With("guild_id", guildID, "context", "failed to list guild channels").Wrap(classifyError(err))
	}

	active, err := r.session.GuildThreadsActive(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, oops.With("guild_id", guildID, "context", "failed to list active threads").Wrap(classifyError(err))
	}

	threads := lo.Map(active.Threads, func(t *discordgo.Channel, _ int) domain.Thread {
		return toThread(guildID, t)
	})
	byParent := lo.GroupBy(threads, func(t domain.Thread) string {
		return t.ParentID
	})

	return lo.Map(channels, func(c *discordgo.Channel, _ int) *domain.Channel {
		channel := toChannel(guildID, c)
		channel.Threads = byParent[c.ID]
		return channel
	}), nil
}

func (r *Discord) ArchivedThreads(ctx context.Context, channel *domain.Channel) domain.ThreadSeq {
	return func(yield func(domain.Thread, error) bool) {
		var before *time.Time
		for {
			page, err := r.session.ThreadsArchived(channel.ID, before, archivedPageSize, discordgo.WithContext(ctx))
			if err != nil {
				yield(domain.Thread{}, oops.
					With("channel_id", channel.ID, "context", "failed to list archived threads").
					Wrap(classifyError(err)))
				return
			}

			for _, t := range page.Threads {
				if !yield(toThread(channel.GuildID, t), nil) {
					return
				}
			}

			if !page.HasMore || len(page.Threads) == 0 {
				return
			}
			last := page.Threads[len(page.Threads)-1]
			if last.ThreadMetadata == nil {
				return
			}
			next := last.ThreadMetadata.ArchiveTimestamp
			before = &next
		}
	}
}

func (r *Discord) EarliestMessage(ctx context.Context, guildID, threadID string) (*messageDomain.Message, error) {
	// "after" snowflake 0 makes Discord return the oldest messages first
	messages, err := r.session.ChannelMessages(threadID, 1, "", "0", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, oops.With("thread_id", threadID, "context", "failed to fetch earliest message").Wrap(classifyError(err))
	}
	if len(messages) == 0 {
		return nil, oops.With("thread_id", threadID).Wrap(sharedErrors.ErrNoMoreItems)
	}

	m := messages[0]
	channelID := m.ChannelID
	if channelID == "" {
		channelID = threadID
	}
	return &messageDomain.Message{
		ID:        m.ID,
		ChannelID: channelID,
		GuildID:   guildID,
		CreatedAt: m.Timestamp,
	}, nil
}

func toChannel(guildID string, c *discordgo.Channel) *domain.Channel {
	if c.GuildID != "" {
		guildID = c.GuildID
	}
	return &domain.Channel{
		ID:       c.ID,
		GuildID:  guildID,
		Name:     c.Name,
		Position: c.Position,
		Kind:     channelKind(c.Type),
	}
}

func channelKind(t discordgo.ChannelType) domain.ChannelKind {
	switch t {
	case discordgo.ChannelTypeGuildText:
		return domain.ChannelKindText
	case discordgo.ChannelTypeGuildVoice, discordgo.ChannelTypeGuildStageVoice:
		return domain.ChannelKindVoice
	case discordgo.ChannelTypeGuildCategory:
		return domain.ChannelKindCategory
	case discordgo.ChannelTypeGuildNews:
		return domain.ChannelKindAnnouncement
	case discordgo.ChannelTypeGuildForum:
		return domain.ChannelKindForum
	default:
		return domain.ChannelKindOther
	}
}

func toThread(guildID string, c *discordgo.Channel) domain.Thread {
	if c.GuildID != "" {
		guildID = c.GuildID
	}
	// Snowflakes embed their creation time; a malformed ID leaves it zero.
	createdAt, _ := discordgo.SnowflakeTimestamp(c.ID)

	thread := domain.Thread{
		ID:        c.ID,
		Name:      c.Name,
		ParentID:  c.ParentID,
		CreatedAt: createdAt,
		URL:       messageDomain.JumpURL(guildID, c.ID, ""),
	}
	if c.ThreadMetadata != nil && c.ThreadMetadata.Archived {
		thread.Archived = true
		thread.ArchivedAt = c.ThreadMetadata.ArchiveTimestamp
	}
	return thread
}

// classifyError maps Discord REST failures onto the shared sentinels.
func classifyError(err error) error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return err
	}

	if restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeMissingAccess, discordgo.ErrCodeMissingPermissions:
			return fmt.Errorf("%w: %w", sharedErrors.ErrAccessDenied, err)
		case discordgo.ErrCodeUnknownChannel, discordgo.ErrCodeUnknownMessage:
			return fmt.Errorf("%w: %w", sharedErrors.ErrNoMoreItems, err)
		}
	}

	if restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusForbidden:
			return fmt.Errorf("%w: %w", sharedErrors.ErrAccessDenied, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", sharedErrors.ErrNoMoreItems, err)
		}
	}

	return err
}
