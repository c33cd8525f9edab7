package domain

import (
	"fmt"
	"iter"
	"time"
)

// Channel represents a guild channel as seen by the bot
type Channel struct {
	ID       string      `json:"id"`
	GuildID  string      `json:"guild_id"`
	Name     string      `json:"name"`
	Position int         `json:"position"`
	Kind     ChannelKind `json:"kind"`
	// Threads holds the channel's active threads in platform order.
	Threads []Thread `json:"threads"`
}

// Mention renders the channel the way Discord links it in message text.
func (c *Channel) Mention() string {
	return fmt.Sprintf("<#%s>", c.ID)
}

// IsText reports whether the channel is a plain guild text channel.
func (c *Channel) IsText() bool {
	return c.Kind == ChannelKindText
}

// Thread represents a thread attached to a parent text channel
type Thread struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ParentID   string    `json:"parent_id"`
	CreatedAt  time.Time `json:"created_at"`
	Archived   bool      `json:"archived"`
	ArchivedAt time.Time `json:"archived_at,omitzero"`
	URL        string    `json:"url"`
}

// ThreadSeq is a finite, possibly failing sequence of threads. A non-nil
// error ends the sequence. Calling the producing function again restarts
// the enumeration from the beginning.
type ThreadSeq = iter.Seq2[Thread, error]
