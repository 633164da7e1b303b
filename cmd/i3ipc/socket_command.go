package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	i3ipc "github.com/wagiedev/i3ipc-go"
)

func newSocketCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "socket",
		Short: "Print the resolved IPC socket path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withClient(cmd, func(_ context.Context, client i3ipc.Client) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), client.SocketPath())

				return err
			})
		},
	}
}
