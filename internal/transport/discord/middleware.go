package discord

import (
	"context"
	"log/slog"

	summaryDomain "github.com/reshetovitsme/discord-thread-digest/internal/modules/summary/domain"
	userService "github.com/reshetovitsme/discord-thread-digest/internal/modules/user/service"
	sharedErrors "github.com/reshetovitsme/discord-thread-digest/internal/shared/errors"
	"github.com/samber/oops"
)

// WithCallLogging logs every invocation to diagnostics, recovers panics,
// and reports failures to the process log (with stack trace) and to
// diagnostics. Failures are not returned to the caller.
func WithCallLogging(next CommandFunc) CommandFunc {
	return func(ctx context.Context, conn *summaryDomain.Connection, inv Invocation) error {
		conn.Diagnostics.Logf(ctx, "Received %s from %s", inv, inv.Author)

		var err error
		if recovered := oops.Recover(func() {
			err = next(ctx, conn, inv)
		}); recovered != nil {
			err = recovered
		}
		if err == nil {
			return nil
		}

		attrs := []any{"command", inv.Name, "args", inv.Args, "author", inv.Author.String(), "error", err}
		if oopsErr, ok := oops.AsOops(err); ok {
			attrs = append(attrs, "stacktrace", oopsErr.Stacktrace())
		}
		slog.Error("Command failed", attrs...)

		conn.Diagnostics.Logf(ctx, "%s from %s FAILED:\n%v\nStack trace logged", inv, inv.Author, err)
		return nil
	}
}

// WithAuthorization rejects invocations from users outside the allow list
func WithAuthorization(users *userService.Service, next CommandFunc) CommandFunc {
	return func(ctx context.Context, conn *summaryDomain.Connection, inv Invocation) error {
		if users != nil && !users.IsAuthorized(inv.Author) {
			return oops.With("user_id", inv.Author.ID).Wrap(sharedErrors.ErrUnauthorized)
		}
		return next(ctx, conn, inv)
	}
}
