package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	messageService "github.com/reshetovitsme/discord-thread-digest/internal/modules/message/service"
	"github.com/reshetovitsme/discord-thread-digest/internal/modules/summary/domain"
	sharedErrors "github.com/reshetovitsme/discord-thread-digest/internal/shared/errors"
	"github.com/samber/oops"
)

// Service runs summarization passes and remembers the latest digest
type Service struct {
	builder   *Builder
	publisher *messageService.Publisher
	window    time.Duration
	now       func() time.Time

	mu     sync.RWMutex
	latest *domain.Digest
}

// New creates a new summary service. window is how far back a thread's
// first message must reach to be flagged.
func New(builder *Builder, publisher *messageService.Publisher, window time.Duration) *Service {
	return &Service{
		builder:   builder,
		publisher: publisher,
		window:    window,
		now:       time.Now,
	}
}

// Run builds every channel summary and publishes each one to the output
// channel. A failed publish is logged and does not stop later channels.
func (s *Service) Run(ctx context.Context, conn *domain.Connection) (*domain.Digest, error) {
	if conn == nil || conn.OutputChannelID == "" {
		return nil, sharedErrors.ErrNotConnected
	}

	started := s.now()
	digest := &domain.Digest{
		ID:        uuid.New(),
		GuildID:   conn.GuildID,
		StartedAt: started,
		Cutoff:    started.Add(-s.window),
	}
	logger := slog.With("digest_id", digest.ID.String(), "guild_id", conn.GuildID)

	summaries, err := s.builder.BuildAll(ctx, conn, digest.Cutoff)
	if err != nil {
		return nil, oops.With("digest_id", digest.ID.String()).Wrap(err)
	}
	digest.Summaries = summaries

	for _, summary := range summaries {
		if err := s.publisher.Publish(ctx, conn.OutputChannelID, summary); err != nil {
			digest.Failed++
			logger.Error("Failed to publish channel summary", "channel_id", summary.ChannelID, "error", err)
			continue
		}
		digest.Published++
	}

	s.mu.Lock()
	s.latest = digest
	s.mu.Unlock()

	logger.Info("Thread digest published", "channels", len(summaries), "published", digest.Published, "failed", digest.Failed)
	return digest, nil
}

// Latest returns the most recent digest, or errors.ErrNoDigest before the first pass
func (s *Service) Latest() (*domain.Digest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil, sharedErrors.ErrNoDigest
	}
	return s.latest, nil
}
