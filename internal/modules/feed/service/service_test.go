package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/reshetovitsme/discord-thread-digest/internal/modules/feed/domain"
	summaryDomain "github.com/reshetovitsme/discord-thread-digest/internal/modules/summary/domain"
	sharedErrors "github.com/reshetovitsme/discord-thread-digest/internal/shared/errors"
	"github.com/stretchr/testify/require"
)

type staticDigests struct {
	digest *summaryDomain.Digest
}

func (s staticDigests) Latest() (*summaryDomain.Digest, error) {
	if s.digest == nil {
		return nil, sharedErrors.ErrNoDigest
	}
	return s.digest, nil
}

func testDigest() *summaryDomain.Digest {
	at := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	return &summaryDomain.Digest{
		ID:        uuid.MustParse("6f1c2f6e-8a3b-4c53-9d43-3c4a8f0b6a10"),
		GuildID:   "g",
		StartedAt: at,
		Summaries: []summaryDomain.Summary{{
			ChannelID:   "c1",
			ChannelName: "general",
			Mention:     "<#c1>",
			BuiltAt:     at,
			Fragment: summaryDomain.Fragment{Lines: []string{
				" - [a <b>](https://discord.com/channels/g/t/m)",
				" *- old (archived last week)*",
			}},
		}},
	}
}

func TestGenerateFeed(t *testing.T) {
	feed, err := New(staticDigests{digest: testDigest()}).GenerateFeed("http://localhost:8080")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/digest", feed.Link.Href)
	require.Len(t, feed.Items, 1)

	item := feed.Items[0]
	require.Equal(t, "#general", item.Title)
	require.Equal(t, "https://discord.com/channels/g/c1", item.Link.Href)
	require.Equal(t, "6f1c2f6e-8a3b-4c53-9d43-3c4a8f0b6a10-c1", item.Id)
	require.Contains(t, item.Content, "&lt;b&gt;")
}

func TestRender_Formats(t *testing.T) {
	svc := New(staticDigests{digest: testDigest()})

	rss, err := svc.Render("http://x", domain.FormatRSS)
	require.NoError(t, err)
	require.Contains(t, rss, "<rss")

	atom, err := svc.Render("http://x", domain.FormatAtom)
	require.NoError(t, err)
	require.Contains(t, atom, "<feed")

	jsonFeed, err := svc.Render("http://x", domain.FormatJSON)
	require.NoError(t, err)
	require.Contains(t, jsonFeed, "#general")

	_, err = svc.Render("http://x", domain.Format("csv"))
	require.Error(t, err)
}

func TestRender_NoDigest(t *testing.T) {
	_, err := New(staticDigests{}).Render("http://x", domain.FormatRSS)
	require.ErrorIs(t, err, sharedErrors.ErrNoDigest)
}
