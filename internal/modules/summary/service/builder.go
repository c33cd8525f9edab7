package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	channelService "github.com/reshetovitsme/discord-thread-digest/internal/modules/channel/service"
	"github.com/reshetovitsme/discord-thread-digest/internal/modules/summary/domain"
	sharedErrors "github.com/reshetovitsme/discord-thread-digest/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Builder assembles one summary per text channel that has threads
type Builder struct {
	channels   *channelService.Service
	classifier *Classifier
	now        func() time.Time
}

// NewBuilder creates a new channel summary builder
func NewBuilder(channels *channelService.Service, classifier *Classifier) *Builder {
	return &Builder{
		channels:   channels,
		classifier: classifier,
		now:        time.Now,
	}
}

// BuildAll returns summaries ordered by channel position. Channels without
// threads are left out, as are channels the bot cannot read. When several
// channels with threads share a position, the one listed last is kept.
func (b *Builder) BuildAll(ctx context.Context, conn *domain.Connection, cutoff time.Time) ([]domain.Summary, error) {
	channels, err := b.channels.TextChannels(ctx, conn.GuildID)
	if err != nil {
		return nil, oops.With("context", "failed to list text channels").Wrap(err)
	}

	byPosition := make(map[int]domain.Summary, len(channels))
	for _, channel := range channels {
		fragment, err := b.classifier.Classify(ctx, conn, channel, cutoff)
		if err != nil {
			if skippable(err) {
				slog.Warn("Skipping channel", "channel_id", channel.ID, "channel", channel.Name, "error", err)
				continue
			}
			return nil, oops.With("channel_id", channel.ID).Wrap(err)
		}
		if fragment.IsEmpty() {
			continue
		}

		byPosition[channel.Position] = domain.Summary{
			ChannelID:   channel.ID,
			ChannelName: channel.Name,
			Mention:     channel.Mention(),
			Position:    channel.Position,
			Fragment:    fragment,
			BuiltAt:     b.now(),
		}
	}

	positions := lo.Keys(byPosition)
	slices.Sort(positions)

	return lo.Map(positions, func(p int, _ int) domain.Summary {
		return byPosition[p]
	}), nil
}

func skippable(err error) bool {
	return errors.Is(err, sharedErrors.ErrAccessDenied) || errors.Is(err, sharedErrors.ErrNoMoreItems)
}
