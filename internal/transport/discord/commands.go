package discord

import (
	"context"
	"fmt"
	"slices"
	"strings"

	summaryDomain "github.com/reshetovitsme/discord-thread-digest/internal/modules/summary/domain"
	userDomain "github.com/reshetovitsme/discord-thread-digest/internal/modules/user/domain"
	userService "github.com/reshetovitsme/discord-thread-digest/internal/modules/user/service"
	sharedErrors "github.com/reshetovitsme/discord-thread-digest/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Invocation is a parsed prefix command
type Invocation struct {
	Prefix    string
	Name      string
	Args      []string
	Author    userDomain.User
	ChannelID string
}

func (i Invocation) String() string {
	return fmt.Sprintf("%s%s %v", i.Prefix, i.Name, i.Args)
}

// CommandFunc handles one command invocation
type CommandFunc func(ctx context.Context, conn *summaryDomain.Connection, inv Invocation) error

type command struct {
	help    string
	handler CommandFunc
}

// Router dispatches prefix commands to their handlers
type Router struct {
	prefix   string
	users    *userService.Service
	commands map[string]command
}

// NewRouter creates a command router for the given prefix
func NewRouter(prefix string, users *userService.Service) *Router {
	return &Router{
		prefix:   prefix,
		users:    users,
		commands: make(map[string]command),
	}
}

// Handle registers a command. Handlers run behind authorization and call logging.
func (r *Router) Handle(name, help string, handler CommandFunc) {
	r.commands[strings.ToLower(name)] = command{
		help:    help,
		handler: WithCallLogging(WithAuthorization(r.users, handler)),
	}
}

// Parse extracts an invocation from message content
func (r *Router) Parse(content string, author userDomain.User, channelID string) (Invocation, bool) {
	if r.prefix == "" || !strings.HasPrefix(content, r.prefix) {
		return Invocation{}, false
	}
	fields := strings.Fields(strings.TrimPrefix(content, r.prefix))
	if len(fields) == 0 {
		return Invocation{}, false
	}
	return Invocation{
		Prefix:    r.prefix,
		Name:      strings.ToLower(fields[0]),
		Args:      fields[1:],
		Author:    author,
		ChannelID: channelID,
	}, true
}

// Dispatch runs the handler registered for inv.Name
func (r *Router) Dispatch(ctx context.Context, conn *summaryDomain.Connection, inv Invocation) error {
	cmd, ok := r.commands[inv.Name]
	if !ok {
		return oops.With("command", inv.Name).Wrap(sharedErrors.ErrUnknownCmd)
	}
	return cmd.handler(ctx, conn, inv)
}

// Help lists the registered commands in name order
func (r *Router) Help() string {
	names := lo.Keys(r.commands)
	slices.Sort(names)

	var b strings.Builder
	b.WriteString("Available commands:")
	for _, name := range names {
		fmt.Fprintf(&b, "\n%s%s - %s", r.prefix, name, r.commands[name].help)
	}
	return b.String()
}
