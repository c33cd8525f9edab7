package errors

import "errors"

var (
	ErrMissingToken         = errors.New("TOKEN environment variable is required")
	ErrMissingGuildID       = errors.New("GUILD_ID environment variable is required")
	ErrMissingOutputChannel = errors.New("OUTPUT_CHANNEL environment variable is required")
	ErrMissingLogChannel    = errors.New("LOG_CHANNEL is required when DEBUG_MODE is enabled")
	ErrInvalidConfig        = errors.New("invalid configuration")

	// ErrAccessDenied is returned when the bot lacks permission to read a channel or thread.
	ErrAccessDenied = errors.New("access denied")
	// ErrNoMoreItems is returned when a listing the bot expected to be non-empty has no items.
	ErrNoMoreItems = errors.New("no more items")

	ErrNotConnected = errors.New("not connected")
	ErrNoDigest     = errors.New("no digest available yet")
	ErrUnauthorized = errors.New("unauthorized user")
	ErrUnknownCmd   = errors.New("unknown command")
)
