//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// ChannelKind represents the kind of a guild channel
// ENUM(text,voice,category,announcement,forum,other)
type ChannelKind string

// ThreadState represents how a thread is rendered in a summary
// ENUM(new,established,archived)
type ThreadState string
