package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	i3ipc "github.com/wagiedev/i3ipc-go"
)

// errEnoughEvents ends a subscription once --count events were printed.
var errEnoughEvents = errors.New("received requested number of events")

type eventLine struct {
	Event   i3ipc.EventType `json:"event"`
	Payload any             `json:"payload"`
}

func newSubscribeCommand(ctx *commandContext) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "subscribe EVENT...",
		Short: "Print events as JSON lines until interrupted",
		Long: "Subscribe to one or more events and print one JSON object per event.\n\n" +
			"Events: workspace, output, mode, window, barconfig_update, binding,\n" +
			"shutdown, tick.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events := make([]i3ipc.EventType, 0, len(args))

			for _, arg := range args {
				event, err := i3ipc.ParseEventType(arg)
				if err != nil {
					return err
				}

				events = append(events, event)
			}

			if count < 0 {
				return fmt.Errorf("--count must not be negative, got %d", count)
			}

			return ctx.withClient(cmd, func(subCtx context.Context, client i3ipc.Client) error {
				return streamEvents(subCtx, cmd, client, events, count)
			})
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Exit after this many events (0 means no limit)")

	return cmd
}

// streamEvents prints events until ctx is cancelled, the subscription ends,
// or count events have been printed.
func streamEvents(
	ctx context.Context,
	cmd *cobra.Command,
	client i3ipc.Client,
	events []i3ipc.EventType,
	count int,
) error {
	seen := 0

	sub, err := client.Subscribe(ctx, events, func(_ context.Context, event i3ipc.EventType, payload any) error {
		if err := writeJSON(cmd, eventLine{Event: event, Payload: payload}); err != nil {
			return err
		}

		seen++
		if count > 0 && seen >= count {
			return errEnoughEvents
		}

		return nil
	})
	if err != nil {
		return err
	}

	defer sub.Close()

	select {
	case <-ctx.Done():
		return nil
	case <-sub.Done():
	}

	if err := sub.Err(); err != nil && !errors.Is(err, errEnoughEvents) {
		return err
	}

	return nil
}
