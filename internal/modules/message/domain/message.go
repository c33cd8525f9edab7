package domain

import (
	"fmt"
	"time"
)

// Message represents a Discord message the bot read, typically the
// first message of a thread
type Message struct {
	ID        string    `json:"id"`
	ChannelID string    `json:"channel_id"`
	GuildID   string    `json:"guild_id"`
	CreatedAt time.Time `json:"created_at"`
}

// JumpURL links straight to the message in the Discord client.
func (m *Message) JumpURL() string {
	return JumpURL(m.GuildID, m.ChannelID, m.ID)
}

// JumpURL builds a discord.com link to a guild channel or message.
// An empty messageID links to the channel itself.
func JumpURL(guildID, channelID, messageID string) string {
	if messageID == "" {
		return fmt.Sprintf("https://discord.com/channels/%s/%s", guildID, channelID)
	}
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildID, channelID, messageID)
}
