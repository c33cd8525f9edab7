package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	channelDomain "github.com/reshetovitsme/discord-thread-digest/internal/modules/channel/domain"
	channelRepo "github.com/reshetovitsme/discord-thread-digest/internal/modules/channel/repository"
	channelService "github.com/reshetovitsme/discord-thread-digest/internal/modules/channel/service"
	messageDomain "github.com/reshetovitsme/discord-thread-digest/internal/modules/message/domain"
	messageService "github.com/reshetovitsme/discord-thread-digest/internal/modules/message/service"
	"github.com/reshetovitsme/discord-thread-digest/internal/modules/summary/domain"
	"github.com/reshetovitsme/discord-thread-digest/internal/shared/diagnostics"
	sharedErrors "github.com/reshetovitsme/discord-thread-digest/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type fakeSender struct {
	texts  []string
	embeds []domain.Embed
	failOn string
}

func (f *fakeSender) SendText(_ context.Context, _ string, content string) error {
	if f.failOn != "" && strings.HasPrefix(content, f.failOn) {
		return errors.New("send failed")
	}
	f.texts = append(f.texts, content)
	return nil
}

func (f *fakeSender) SendEmbed(_ context.Context, _ string, embed domain.Embed) error {
	f.embeds = append(f.embeds, embed)
	return nil
}

type fixture struct {
	repo       *channelRepo.Memory
	channels   *channelService.Service
	classifier *Classifier
	builder    *Builder
	sender     *fakeSender
	logSender  *fakeSender
	conn       *domain.Connection
}

func newFixture(t *testing.T, embeds bool) *fixture {
	t.Helper()

	repo := channelRepo.NewMemory()
	channels := channelService.New(repo)
	classifier := NewClassifier(channels, embeds)
	classifier.now = func() time.Time { return testNow }
	builder := NewBuilder(channels, classifier)
	builder.now = func() time.Time { return testNow }
	logSender := &fakeSender{}

	return &fixture{
		repo:       repo,
		channels:   channels,
		classifier: classifier,
		builder:    builder,
		sender:     &fakeSender{},
		logSender:  logSender,
		conn: &domain.Connection{
			GuildID:         "g",
			OutputChannelID: "out",
			LogChannelID:    "log",
			Diagnostics:     diagnostics.New(true, "log", logSender, nil),
		},
	}
}

func (f *fixture) addActive(channel *channelDomain.Channel, threadID, name string, firstMessageAt time.Time) {
	channel.Threads = append(channel.Threads, channelDomain.Thread{ID: threadID, Name: name, ParentID: channel.ID})
	f.repo.SetEarliest(threadID, &messageDomain.Message{
		ID:        "m-" + threadID,
		ChannelID: threadID,
		GuildID:   "g",
		CreatedAt: firstMessageAt,
	})
}

func (f *fixture) addArchived(channelID, threadID, name string, archivedAt time.Time) {
	f.repo.AddArchived(channelID, channelDomain.Thread{
		ID:         threadID,
		Name:       name,
		ParentID:   channelID,
		Archived:   true,
		ArchivedAt: archivedAt,
	})
}

func textChannel(id string, position int) *channelDomain.Channel {
	return &channelDomain.Channel{ID: id, Name: id, Position: position, Kind: channelDomain.ChannelKindText}
}

func TestClassify_NewAndArchivedLines(t *testing.T) {
	f := newFixture(t, false)
	channel := textChannel("c1", 0)
	channel.GuildID = "g"
	f.addActive(channel, "t1", "roadmap", testNow.Add(-72*time.Hour))
	f.addArchived("c1", "t2", "retro", testNow.Add(-10*24*time.Hour))

	fragment, err := f.classifier.Classify(context.Background(), f.conn, channel, testNow.Add(-24*time.Hour))
	require.NoError(t, err)
	require.False(t, fragment.HasEmbeds())
	require.Equal(t, []string{
		" **- [roadmap](https://discord.com/channels/g/t1/m-t1)** *(new)*",
		" *- retro (archived last week)*",
	}, fragment.Lines)

	require.Equal(t, []string{"LOG: \n **- [roadmap](https://discord.com/channels/g/t1/m-t1)** *(new)*"}, f.logSender.texts)
}

func TestClassify_RecentThreadIsPlainBullet(t *testing.T) {
	f := newFixture(t, false)
	channel := textChannel("c1", 0)
	f.addActive(channel, "t1", "standup", testNow.Add(-time.Hour))

	fragment, err := f.classifier.Classify(context.Background(), f.conn, channel, testNow.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, []string{" - [standup](https://discord.com/channels/g/t1/m-t1)"}, fragment.Lines)
}

func TestClassify_EmbedsReplaceActiveLines(t *testing.T) {
	f := newFixture(t, true)
	channel := textChannel("c1", 0)
	f.addActive(channel, "t1", "roadmap", testNow.Add(-72*time.Hour))
	f.addActive(channel, "t3", "standup", testNow.Add(-time.Hour))
	f.addArchived("c1", "t2", "retro", testNow.Add(-3*time.Hour))

	fragment, err := f.classifier.Classify(context.Background(), f.conn, channel, testNow.Add(-24*time.Hour))
	require.NoError(t, err)
	require.True(t, fragment.HasEmbeds())
	require.Equal(t, []domain.Embed{
		{Title: " - **roadmap** *(new)*", URL: "https://discord.com/channels/g/t1/m-t1"},
		{Title: " - standup", URL: "https://discord.com/channels/g/t3/m-t3"},
	}, fragment.Embeds)
	require.Equal(t, []string{" *- retro (archived today)*"}, fragment.Lines)
}

func TestClassify_EarliestMessageForbidden(t *testing.T) {
	f := newFixture(t, false)
	channel := textChannel("c1", 0)
	f.addActive(channel, "t1", "secret", testNow)
	f.repo.FailEarliest("t1", sharedErrors.ErrAccessDenied)

	_, err := f.classifier.Classify(context.Background(), f.conn, channel, testNow)
	require.ErrorIs(t, err, sharedErrors.ErrAccessDenied)
}

func TestBuildAll_OrderAndEligibility(t *testing.T) {
	f := newFixture(t, false)

	late := textChannel("late", 9)
	f.addActive(late, "t-late", "late thread", testNow.Add(-time.Hour))
	f.repo.AddChannel("g", late)

	empty := textChannel("empty", 0)
	f.repo.AddChannel("g", empty)

	archivedOnly := textChannel("archived-only", 3)
	f.repo.AddChannel("g", archivedOnly)
	f.addArchived("archived-only", "t-old", "old", testNow.Add(-800*24*time.Hour))

	forbidden := textChannel("forbidden", 5)
	f.addActive(forbidden, "t-forbidden", "hidden", testNow.Add(-time.Hour))
	f.repo.AddChannel("g", forbidden)
	f.repo.FailArchived("forbidden", sharedErrors.ErrAccessDenied)

	first := textChannel("first", 1)
	f.addActive(first, "t-first", "first thread", testNow.Add(-48*time.Hour))
	f.repo.AddChannel("g", first)

	voice := &channelDomain.Channel{ID: "voice", Position: 2, Kind: channelDomain.ChannelKindVoice}
	f.repo.AddChannel("g", voice)

	summaries, err := f.builder.BuildAll(context.Background(), f.conn, testNow.Add(-24*time.Hour))
	require.NoError(t, err)

	ids := lo.Map(summaries, func(s domain.Summary, _ int) string { return s.ChannelID })
	require.Equal(t, []string{"first", "archived-only", "late"}, ids)

	positions := lo.Map(summaries, func(s domain.Summary, _ int) int { return s.Position })
	require.IsIncreasing(t, positions)

	require.Equal(t, "<#archived-only>\n *- old (archived 2 years ago)*", summaries[1].Text())
}

func TestBuildAll_PropagatesUnexpectedErrors(t *testing.T) {
	f := newFixture(t, false)
	channel := textChannel("c1", 0)
	f.repo.AddChannel("g", channel)
	boom := errors.New("gateway closed")
	f.repo.FailArchived("c1", boom)

	_, err := f.builder.BuildAll(context.Background(), f.conn, testNow)
	require.ErrorIs(t, err, boom)
}

func TestRun_PublishesEachChannelIndependently(t *testing.T) {
	f := newFixture(t, false)

	for i, id := range []string{"a", "b", "c"} {
		channel := textChannel(id, i)
		f.repo.AddChannel("g", channel)
		f.addArchived(id, "t-"+id, "thread "+id, testNow.Add(-time.Hour))
	}
	f.sender.failOn = "<#b>"

	svc := New(f.builder, messageService.NewPublisher(f.sender), 24*time.Hour)
	svc.now = func() time.Time { return testNow }

	_, err := svc.Latest()
	require.ErrorIs(t, err, sharedErrors.ErrNoDigest)

	digest, err := svc.Run(context.Background(), f.conn)
	require.NoError(t, err)
	require.Equal(t, 2, digest.Published)
	require.Equal(t, 1, digest.Failed)
	require.Equal(t, testNow.Add(-24*time.Hour), digest.Cutoff)
	require.Equal(t, []string{
		"<#a>\n *- thread a (archived today)*",
		"<#c>\n *- thread c (archived today)*",
	}, f.sender.texts)

	latest, err := svc.Latest()
	require.NoError(t, err)
	require.Equal(t, digest.ID, latest.ID)
}

func TestRun_RequiresConnection(t *testing.T) {
	f := newFixture(t, false)
	svc := New(f.builder, messageService.NewPublisher(f.sender), 24*time.Hour)

	_, err := svc.Run(context.Background(), nil)
	require.ErrorIs(t, err, sharedErrors.ErrNotConnected)
}

func TestBuildAll_SamePositionKeepsChannelWithThreads(t *testing.T) {
	f := newFixture(t, false)

	withThreads := textChannel("with-threads", 4)
	f.addActive(withThreads, "t1", "design", testNow.Add(-time.Hour))
	f.repo.AddChannel("g", withThreads)
	f.repo.AddChannel("g", textChannel("no-threads", 4))

	summaries, err := f.builder.BuildAll(context.Background(), f.conn, testNow.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, "with-threads", summaries[0].ChannelID)
}

func TestBuildAll_SamePositionLastChannelWithThreadsWins(t *testing.T) {
	f := newFixture(t, false)

	for _, id := range []string{"earlier", "later"} {
		f.repo.AddChannel("g", textChannel(id, 2))
		f.addArchived(id, "t-"+id, "thread "+id, testNow.Add(-time.Hour))
	}
	f.repo.AddChannel("g", textChannel("empty", 2))

	summaries, err := f.builder.BuildAll(context.Background(), f.conn, testNow.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.Equal(t, "later", summaries[0].ChannelID)
}

func TestBuildAll_ThreadWithoutMessagesSkipsChannel(t *testing.T) {
	f := newFixture(t, false)

	silent := textChannel("silent", 0)
	silent.Threads = append(silent.Threads, channelDomain.Thread{ID: "t-empty", Name: "empty", ParentID: "silent"})
	f.repo.AddChannel("g", silent)
	f.addArchived("silent", "t-old", "old", testNow.Add(-48*time.Hour))

	other := textChannel("other", 1)
	f.repo.AddChannel("g", other)
	f.addArchived("other", "t-other", "other", testNow.Add(-48*time.Hour))

	summaries, err := f.builder.BuildAll(context.Background(), f.conn, testNow.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, []string{"other"}, lo.Map(summaries, func(s domain.Summary, _ int) string { return s.ChannelID }))
}

func TestThreadLine(t *testing.T) {
	tests := []struct {
		state    channelDomain.ThreadState
		expected string
	}{
		{channelDomain.ThreadStateNew, " **- [plan](https://x)** *(new)*"},
		{channelDomain.ThreadStateEstablished, " - [plan](https://x)"},
		{channelDomain.ThreadStateArchived, " *- plan (archived yesterday)*"},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			require.Equal(t, tt.expected, threadLine(tt.state, "plan", "https://x", "yesterday"))
		})
	}
}
