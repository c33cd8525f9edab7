package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Embed is a titled link rendered as a rich embed by the chat client
type Embed struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Fragment is the classified body of one channel's summary
type Fragment struct {
	Lines  []string `json:"lines"`
	Embeds []Embed  `json:"embeds,omitempty"`
}

// IsEmpty reports whether the channel had no threads to list
func (f Fragment) IsEmpty() bool {
	return len(f.Lines) == 0 && len(f.Embeds) == 0
}

// HasEmbeds reports whether the fragment must be published as separate embeds
func (f Fragment) HasEmbeds() bool {
	return len(f.Embeds) > 0
}

// Body joins the lines, each starting on a new line
func (f Fragment) Body() string {
	var b strings.Builder
	for _, line := range f.Lines {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}

// Summary is the message built for one channel. It is not modified after
// construction.
type Summary struct {
	ChannelID   string    `json:"channel_id"`
	ChannelName string    `json:"channel_name"`
	Mention     string    `json:"mention"`
	Position    int       `json:"position"`
	Fragment    Fragment  `json:"fragment"`
	BuiltAt     time.Time `json:"built_at"`
}

// Text is the channel mention followed by the bullet lines
func (s Summary) Text() string {
	return s.Mention + s.Fragment.Body()
}

// Digest records one summarization pass
type Digest struct {
	ID        uuid.UUID `json:"id"`
	GuildID   string    `json:"guild_id"`
	StartedAt time.Time `json:"started_at"`
	Cutoff    time.Time `json:"cutoff"`
	Summaries []Summary `json:"summaries"`
	Published int       `json:"published"`
	Failed    int       `json:"failed"`
}
