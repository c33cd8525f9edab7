package service

import (
	"context"

	summaryDomain "github.com/reshetovitsme/discord-thread-digest/internal/modules/summary/domain"
	"github.com/samber/oops"
)

// Sender posts messages to a chat channel
type Sender interface {
	SendText(ctx context.Context, channelID, content string) error
	SendEmbed(ctx context.Context, channelID string, embed summaryDomain.Embed) error
}

// Publisher sends channel summaries to the output channel
type Publisher struct {
	sender Sender
}

// NewPublisher creates a new summary publisher
func NewPublisher(sender Sender) *Publisher {
	return &Publisher{sender: sender}
}

// Publish sends one summary. Plain summaries go out as a single message;
// summaries with embeds are sent as the mention, each embed, then the
// remaining lines.
func (p *Publisher) Publish(ctx context.Context, channelID string, summary summaryDomain.Summary) error {
	if !summary.Fragment.HasEmbeds() {
		if err := p.sender.SendText(ctx, channelID, summary.Text()); err != nil {
			return oops.With("channel_id", channelID, "source_channel_id", summary.ChannelID).Wrap(err)
		}
		return nil
	}

	if err := p.sender.SendText(ctx, channelID, summary.Mention); err != nil {
		return oops.With("channel_id", channelID, "source_channel_id", summary.ChannelID).Wrap(err)
	}
	for _, embed := range summary.Fragment.Embeds {
		if err := p.sender.SendEmbed(ctx, channelID, embed); err != nil {
			return oops.With("channel_id", channelID, "source_channel_id", summary.ChannelID, "embed_url", embed.URL).Wrap(err)
		}
	}
	// Discord rejects empty messages
	if body := summary.Fragment.Body(); body != "" {
		if err := p.sender.SendText(ctx, channelID, body); err != nil {
			return oops.With("channel_id", channelID, "source_channel_id", summary.ChannelID).Wrap(err)
		}
	}
	return nil
}
