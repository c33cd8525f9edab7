package diagnostics

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []string
	err  error
}

func (s *recordingSender) SendText(_ context.Context, _ string, content string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, content)
	return nil
}

func TestLog_ChunksLongMessages(t *testing.T) {
	sender := &recordingSender{}
	logger := New(true, "42", sender, nil)

	logger.Log(context.Background(), strings.Repeat("a", 8000))

	require.Len(t, sender.sent, MaxChunks)
	for _, segment := range sender.sent {
		require.True(t, strings.HasPrefix(segment, Prefix))
		require.Len(t, strings.TrimPrefix(segment, Prefix), MaxChunkSize)
	}
}

func TestLog_SevenThousandCharacters(t *testing.T) {
	sender := &recordingSender{}
	logger := New(true, "42", sender, nil)

	logger.Log(context.Background(), strings.Repeat("b", 7000))

	require.Len(t, sender.sent, 5)
	require.Len(t, strings.TrimPrefix(sender.sent[0], Prefix), 1500)
	require.Len(t, strings.TrimPrefix(sender.sent[4], Prefix), 1000)
}

func TestLog_ShortAndEmptyMessages(t *testing.T) {
	sender := &recordingSender{}
	logger := New(true, "42", sender, nil)

	logger.Log(context.Background(), "hello")
	logger.Log(context.Background(), "")

	require.Equal(t, []string{"LOG: hello"}, sender.sent)
}

func TestLog_DisabledSendsNothing(t *testing.T) {
	sender := &recordingSender{}
	logger := New(false, "42", sender, nil)

	logger.Log(context.Background(), "hello")
	logger.Logf(context.Background(), "hello %d", 1)

	require.Empty(t, sender.sent)

	var nilLogger *Logger
	require.False(t, nilLogger.Enabled())
	nilLogger.Log(context.Background(), "no panic")
}

func TestLog_FallsBackToConsole(t *testing.T) {
	var buf bytes.Buffer
	console := slog.New(slog.NewTextHandler(&buf, nil))
	logger := New(true, "", nil, console)

	logger.Logf(context.Background(), "Bot connected as %s", "digest#0001")

	require.Contains(t, buf.String(), "Bot connected as digest#0001")
}

func TestLog_SendFailureIsNotFatal(t *testing.T) {
	var buf bytes.Buffer
	sender := &recordingSender{err: errors.New("boom")}
	logger := New(true, "42", sender, slog.New(slog.NewTextHandler(&buf, nil)))

	logger.Log(context.Background(), "hello")

	require.Contains(t, buf.String(), "Failed to send diagnostic message")
}

func TestChunk_IsRuneSafe(t *testing.T) {
	chunks := Chunk(strings.Repeat("é", MaxChunkSize+1))

	require.Len(t, chunks, 2)
	require.Equal(t, MaxChunkSize, utf8.RuneCountInString(chunks[0]))
	require.Equal(t, "é", chunks[1])
}
