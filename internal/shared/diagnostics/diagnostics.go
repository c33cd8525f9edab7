package diagnostics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
)

const (
	// MaxChunkSize is the largest segment, in characters, sent per log message.
	MaxChunkSize = 1500
	// MaxChunks caps the segments sent per Log call; the rest is dropped.
	MaxChunks = 5
	// Prefix marks every segment posted to the log channel.
	Prefix = "LOG: "
)

// Sender posts plain text to a chat channel.
type Sender interface {
	SendText(ctx context.Context, channelID, content string) error
}

// Logger forwards debug diagnostics to a log channel, or to the process
// logger when no channel is available. It is a no-op unless enabled.
type Logger struct {
	enabled   bool
	channelID string
	sender    Sender
	logger    *slog.Logger
}

// New creates a diagnostics logger. An empty channelID or nil sender
// falls back to the process logger.
func New(enabled bool, channelID string, sender Sender, logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logger{
		enabled:   enabled,
		channelID: channelID,
		sender:    sender,
		logger:    logger,
	}
}

// Enabled reports whether Log does anything.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

// Log sends msg in at most MaxChunks segments of MaxChunkSize characters.
func (l *Logger) Log(ctx context.Context, msg string) {
	if !l.Enabled() {
		return
	}

	if l.channelID == "" || l.sender == nil {
		l.logger.Info(msg, "source", "diagnostics")
		return
	}

	for _, segment := range Chunk(msg) {
		if err := l.sender.SendText(ctx, l.channelID, Prefix+segment); err != nil {
			l.logger.Error("Failed to send diagnostic message", "channel_id", l.channelID, "error", err)
			return
		}
	}
}

// Logf formats according to a format specifier and calls Log.
func (l *Logger) Logf(ctx context.Context, format string, args ...any) {
	if !l.Enabled() {
		return
	}
	l.Log(ctx, fmt.Sprintf(format, args...))
}

// Chunk splits msg into rune-safe segments and keeps the first MaxChunks.
func Chunk(msg string) []string {
	if msg == "" {
		return nil
	}
	return lo.Slice(lo.ChunkString(msg, MaxChunkSize), 0, MaxChunks)
}
