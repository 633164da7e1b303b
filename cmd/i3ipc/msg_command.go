package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	i3ipc "github.com/wagiedev/i3ipc-go"
)

func newMsgCommand(ctx *commandContext) *cobra.Command {
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "msg [-t TYPE] [PAYLOAD...]",
		Short: "Send one message and print the reply",
		Long: "Send one message and print the JSON reply.\n\n" +
			"TYPE is a message name such as get_tree, an alias such as command, or a\n" +
			"name without the get_ prefix. The payload arguments are joined with\n" +
			"spaces and sent verbatim. The exit status is non-zero when a\n" +
			"run_command reply reports a failed command.",
		RunE: func(cmd *cobra.Command, args []string) error {
			msgType, err := i3ipc.LookupMessage(typeFlag)
			if err != nil {
				return err
			}

			payload := strings.Join(args, " ")

			return ctx.withClient(cmd, func(reqCtx context.Context, client i3ipc.Client) error {
				var (
					reply any
					err   error
				)

				if msgType == i3ipc.RunCommand {
					reply, err = client.RunCommand(reqCtx, payload)
				} else {
					reply, err = client.RequestRaw(reqCtx, msgType, payload)
				}

				if reply != nil {
					if writeErr := writeJSON(cmd, reply); writeErr != nil {
						return writeErr
					}
				}

				return err
			})
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "run_command", "Message type")

	return cmd
}
