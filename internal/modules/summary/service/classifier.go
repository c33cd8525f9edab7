package service

import (
	"context"
	"fmt"
	"time"

	channelDomain "github.com/reshetovitsme/discord-thread-digest/internal/modules/channel/domain"
	channelService "github.com/reshetovitsme/discord-thread-digest/internal/modules/channel/service"
	"github.com/reshetovitsme/discord-thread-digest/internal/modules/summary/domain"
	"github.com/samber/oops"
)

// Classifier renders a channel's threads as summary lines
type Classifier struct {
	channels *channelService.Service
	embeds   bool
	now      func() time.Time
}

// NewClassifier creates a thread classifier. With embeds enabled, active
// threads are rendered as embeds instead of text lines.
func NewClassifier(channels *channelService.Service, embeds bool) *Classifier {
	return &Classifier{
		channels: channels,
		embeds:   embeds,
		now:      time.Now,
	}
}

// Classify lists the channel's active threads, flagged against cutoff by
// the time of their first message, followed by its archived threads with
// their closure age. Threads keep the order the platform returns them in.
func (c *Classifier) Classify(ctx context.Context, conn *domain.Connection, channel *channelDomain.Channel, cutoff time.Time) (domain.Fragment, error) {
	var fragment domain.Fragment

	for _, thread := range c.channels.ActiveThreads(channel) {
		first, err := c.channels.EarliestMessage(ctx, channel.GuildID, thread)
		if err != nil {
			return domain.Fragment{}, oops.With("channel_id", channel.ID, "thread_id", thread.ID).Wrap(err)
		}

		// Threads whose first message predates the cutoff are flagged "(new)".
		state := channelDomain.ThreadStateEstablished
		if first.CreatedAt.Before(cutoff) {
			state = channelDomain.ThreadStateNew
		}

		line := threadLine(state, thread.Name, first.JumpURL(), "")
		if c.embeds {
			fragment.Embeds = append(fragment.Embeds, domain.Embed{
				Title: embedTitle(state, thread.Name),
				URL:   first.JumpURL(),
			})
		} else {
			fragment.Lines = append(fragment.Lines, line)
		}
		conn.Diagnostics.Log(ctx, "\n"+line)
	}

	now := c.now()
	for thread, err := range c.channels.ArchivedThreads(ctx, channel) {
		if err != nil {
			return domain.Fragment{}, oops.With("channel_id", channel.ID).Wrap(err)
		}
		if !thread.Archived {
			continue
		}
		age := RelativeTime(now, thread.ArchivedAt)
		fragment.Lines = append(fragment.Lines, threadLine(channelDomain.ThreadStateArchived, thread.Name, "", age))
	}

	return fragment, nil
}

// threadLine renders one summary bullet. url applies to new and established
// threads, age to archived ones.
func threadLine(state channelDomain.ThreadState, name, url, age string) string {
	switch state {
	case channelDomain.ThreadStateNew:
		return fmt.Sprintf(" **- [%s](%s)** *(new)*", name, url)
	case channelDomain.ThreadStateArchived:
		return fmt.Sprintf(" *- %s (archived %s)*", name, age)
	default:
		return fmt.Sprintf(" - [%s](%s)", name, url)
	}
}

func embedTitle(state channelDomain.ThreadState, name string) string {
	if state == channelDomain.ThreadStateNew {
		return fmt.Sprintf(" - **%s** *(new)*", name)
	}
	return fmt.Sprintf(" - %s", name)
}
