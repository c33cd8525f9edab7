package service

import (
	"fmt"
	"html"
	"strings"

	"github.com/gorilla/feeds"
	"github.com/reshetovitsme/discord-thread-digest/internal/modules/feed/domain"
	messageDomain "github.com/reshetovitsme/discord-thread-digest/internal/modules/message/domain"
	summaryDomain "github.com/reshetovitsme/discord-thread-digest/internal/modules/summary/domain"
	"github.com/samber/oops"
)

// DigestSource provides the most recent digest
type DigestSource interface {
	Latest() (*summaryDomain.Digest, error)
}

// Service handles feed generation for thread digests
type Service struct {
	digests DigestSource
}

// New creates a new feed service
func New(digests DigestSource) *Service {
	return &Service{digests: digests}
}

// GenerateFeed builds a feed with one item per summarized channel of the latest digest
func (s *Service) GenerateFeed(baseURL string) (*feeds.Feed, error) {
	digest, err := s.digests.Latest()
	if err != nil {
		return nil, oops.With("context", "no digest to render").Wrap(err)
	}

	feed := &feeds.Feed{
		Title:       "Thread digest",
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/digest", baseURL)},
		Description: fmt.Sprintf("Active and archived threads of guild %s", digest.GuildID),
		Id:          digest.ID.String(),
		Created:     digest.StartedAt,
		Updated:     digest.StartedAt,
	}

	feed.Items = make([]*feeds.Item, 0, len(digest.Summaries))
	for _, summary := range digest.Summaries {
		feed.Items = append(feed.Items, summaryToFeedItem(digest, summary))
	}

	return feed, nil
}

// Render generates the feed and serializes it in the requested format
func (s *Service) Render(baseURL string, format domain.Format) (string, error) {
	feed, err := s.GenerateFeed(baseURL)
	if err != nil {
		return "", err
	}

	var out string
	switch format {
	case domain.FormatRSS:
		out, err = feed.ToRss()
	case domain.FormatAtom:
		out, err = feed.ToAtom()
	case domain.FormatJSON:
		out, err = feed.ToJSON()
	default:
		return "", oops.With("format", format).Errorf("unsupported feed format")
	}
	if err != nil {
		return "", oops.With("format", format, "context", "failed to serialize feed").Wrap(err)
	}
	return out, nil
}

func summaryToFeedItem(digest *summaryDomain.Digest, summary summaryDomain.Summary) *feeds.Item {
	lines := append([]string(nil), summary.Fragment.Lines...)
	for _, embed := range summary.Fragment.Embeds {
		lines = append(lines, fmt.Sprintf("%s (%s)", embed.Title, embed.URL))
	}

	var content strings.Builder
	content.WriteString("<ul>")
	for _, line := range lines {
		content.WriteString("<li>")
		content.WriteString(html.EscapeString(strings.TrimSpace(line)))
		content.WriteString("</li>")
	}
	content.WriteString("</ul>")

	return &feeds.Item{
		Title:       "#" + summary.ChannelName,
		Link:        &feeds.Link{Href: messageDomain.JumpURL(digest.GuildID, summary.ChannelID, "")},
		Description: strings.TrimPrefix(strings.Join(lines, "\n"), " "),
		Content:     content.String(),
		Created:     summary.BuiltAt,
		Id:          fmt.Sprintf("%s-%s", digest.ID, summary.ChannelID),
	}
}
