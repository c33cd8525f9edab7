package repository

import (
	"context"

	"github.com/reshetovitsme/discord-thread-digest/internal/modules/channel/domain"
	messageDomain "github.com/reshetovitsme/discord-thread-digest/internal/modules/message/domain"
)

// Repository reads guild channels and threads from the chat platform.
// Errors wrap shared errors.ErrAccessDenied when the bot lacks permission
// and errors.ErrNoMoreItems when an expected item does not exist.
type Repository interface {
	// GuildChannels returns every channel of the guild with its active threads attached.
	GuildChannels(ctx context.Context, guildID string) ([]*domain.Channel, error)
	// ArchivedThreads lazily pages through the channel's archived threads.
	ArchivedThreads(ctx context.Context, channel *domain.Channel) domain.ThreadSeq
	// EarliestMessage returns the first message posted in a thread.
	EarliestMessage(ctx context.Context, guildID, threadID string) (*messageDomain.Message, error)
}
