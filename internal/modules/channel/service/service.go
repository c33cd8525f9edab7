package service

import (
	"cmp"
	"context"
	"slices"

	"github.com/reshetovitsme/discord-thread-digest/internal/modules/channel/domain"
	channelRepo "github.com/reshetovitsme/discord-thread-digest/internal/modules/channel/repository"
	messageDomain "github.com/reshetovitsme/discord-thread-digest/internal/modules/message/domain"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Service handles channel traversal
type Service struct {
	repo channelRepo.Repository
}

// New creates a new channel service
func New(repo channelRepo.Repository) *Service {
	return &Service{repo: repo}
}

// TextChannels returns the guild's text channels in ascending position.
// Channels sharing a position keep the order the platform listed them in.
func (s *Service) TextChannels(ctx context.Context, guildID string) ([]*domain.Channel, error) {
	channels, err := s.repo.GuildChannels(ctx, guildID)
	if err != nil {
		return nil, oops.With("guild_id", guildID).Wrap(err)
	}

	text := lo.Filter(channels, func(c *domain.Channel, _ int) bool {
		return c.IsText()
	})
	slices.SortStableFunc(text, func(a, b *domain.Channel) int {
		return cmp.Compare(a.Position, b.Position)
	})

	return text, nil
}

// ActiveThreads returns the channel's threads that are not archived
func (s *Service) ActiveThreads(channel *domain.Channel) []domain.Thread {
	return lo.Filter(channel.Threads, func(t domain.Thread, _ int) bool {
		return !t.Archived
	})
}

// ArchivedThreads returns a restartable sequence of the channel's archived threads
func (s *Service) ArchivedThreads(ctx context.Context, channel *domain.Channel) domain.ThreadSeq {
	return s.repo.ArchivedThreads(ctx, channel)
}

// EarliestMessage returns the first message of a thread
func (s *Service) EarliestMessage(ctx context.Context, guildID string, thread domain.Thread) (*messageDomain.Message, error) {
	return s.repo.EarliestMessage(ctx, guildID, thread.ID)
}
