package i3ipc

import (
	"context"
	"fmt"
)

// WithClient manages client lifecycle with automatic cleanup.
//
// This helper creates a client with the provided options, executes the
// callback function, and ensures proper cleanup via Close() when done.
//
// If the callback returns an error, it is returned to the caller.
// If Close() fails, a warning is logged but does not override the callback's error.
//
// Example usage:
//
//	err := i3ipc.WithClient(ctx, func(c i3ipc.Client) error {
//	    _, err := c.RunCommand(ctx, "workspace 3")
//	    return err
//	},
//	    i3ipc.WithLogger(log),
//	    i3ipc.WithSocketPath("/run/user/1000/i3/ipc-socket.1234"),
//	)
func WithClient(ctx context.Context, fn func(Client) error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	options := applyOptions(opts)

	log := options.Logger
	if log == nil {
		log = NopLogger()
	}

	client, err := NewClient(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			log.Warn("failed to close client", "error", closeErr)
		}
	}()

	return fn(client)
}
