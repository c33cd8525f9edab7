package repository

import (
	"context"
	"sync"

	"github.com/reshetovitsme/discord-thread-digest/internal/modules/channel/domain"
	messageDomain "github.com/reshetovitsme/discord-thread-digest/internal/modules/message/domain"
	sharedErrors "github.com/reshetovitsme/discord-thread-digest/internal/shared/errors"
	"github.com/samber/oops"
)

// Memory implements channel.Repository over in-process data for tests.
type Memory struct {
	mu sync.RWMutex

	channels     map[string][]*domain.Channel
	archived     map[string][]domain.Thread
	archivedErrs map[string]error
	earliest     map[string]*messageDomain.Message
	earliestErrs map[string]error
}

// NewMemory creates an empty in-memory channel repository
func NewMemory() *Memory {
	return &Memory{
		channels:     make(map[string][]*domain.Channel),
		archived:     make(map[string][]domain.Thread),
		archivedErrs: make(map[string]error),
		earliest:     make(map[string]*messageDomain.Message),
		earliestErrs: make(map[string]error),
	}
}

// AddChannel appends a channel to the guild listing
func (m *Memory) AddChannel(guildID string, channel *domain.Channel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	channel.GuildID = guildID
	m.channels[guildID] = append(m.channels[guildID], channel)
}

// AddArchived appends an archived thread to a channel
func (m *Memory) AddArchived(channelID string, thread domain.Thread) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.archived[channelID] = append(m.archived[channelID], thread)
}

// FailArchived makes archived-thread listing for a channel fail with err
func (m *Memory) FailArchived(channelID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.archivedErrs[channelID] = err
}

// SetEarliest records the first message of a thread
func (m *Memory) SetEarliest(threadID string, message *messageDomain.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.earliest[threadID] = message
}

// FailEarliest makes the earliest-message lookup for a thread fail with err
func (m *Memory) FailEarliest(threadID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.earliestErrs[threadID] = err
}

func (m *Memory) GuildChannels(_ context.Context, guildID string) ([]*domain.Channel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	channels, ok := m.channels[guildID]
	if !ok {
		return nil, oops.With("guild_id", guildID).Wrap(sharedErrors.ErrNoMoreItems)
	}
	out := make([]*domain.Channel, len(channels))
	copy(out, channels)
	return out, nil
}

func (m *Memory) ArchivedThreads(ctx context.Context, channel *domain.Channel) domain.ThreadSeq {
	return func(yield func(domain.Thread, error) bool) {
		m.mu.RLock()
		err := m.archivedErrs[channel.ID]
		threads := append([]domain.Thread(nil), m.archived[channel.ID]...)
		m.mu.RUnlock()

		if err != nil {
			yield(domain.Thread{}, oops.With("channel_id", channel.ID).Wrap(err))
			return
		}
		for _, t := range threads {
			if ctx.Err() != nil {
				yield(domain.Thread{}, ctx.Err())
				return
			}
			if !yield(t, nil) {
				return
			}
		}
	}
}

func (m *Memory) EarliestMessage(_ context.Context, guildID, threadID string) (*messageDomain.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.earliestErrs[threadID]; err != nil {
		return nil, oops.With("thread_id", threadID).Wrap(err)
	}
	message, ok := m.earliest[threadID]
	if !ok {
		return nil, oops.With("thread_id", threadID).Wrap(sharedErrors.ErrNoMoreItems)
	}
	out := *message
	if out.GuildID == "" {
		out.GuildID = guildID
	}
	return &out, nil
}
