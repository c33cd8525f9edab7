package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	summaryDomain "github.com/reshetovitsme/discord-thread-digest/internal/modules/summary/domain"
	"github.com/samber/oops"
)

// Sender posts text and embeds through a discordgo session
type Sender struct {
	session *discordgo.Session
}

// NewSender creates a new Discord sender
func NewSender(session *discordgo.Session) *Sender {
	return &Sender{session: session}
}

// SendText posts a plain message
func (s *Sender) SendText(ctx context.Context, channelID, content string) error {
	if _, err := s.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx)); err != nil {
		return oops.With("channel_id", channelID, "context", "failed to send message").Wrap(err)
	}
	return nil
}

// SendEmbed posts a single titled link embed
func (s *Sender) SendEmbed(ctx context.Context, channelID string, embed summaryDomain.Embed) error {
	_, err := s.session.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
		Title: embed.Title,
		URL:   embed.URL,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return oops.With("channel_id", channelID, "context", "failed to send embed").Wrap(err)
	}
	return nil
}
