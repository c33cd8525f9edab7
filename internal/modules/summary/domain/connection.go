package domain

import (
	"time"

	"github.com/reshetovitsme/discord-thread-digest/internal/shared/diagnostics"
)

// Connection carries the handles resolved when the gateway becomes ready.
// A new value is built on every (re)connect and passed explicitly to the
// summarization pass and command handlers.
type Connection struct {
	GuildID         string
	GuildName       string
	OutputChannelID string
	LogChannelID    string
	BotUser         string
	ConnectedAt     time.Time
	Diagnostics     *diagnostics.Logger
}
