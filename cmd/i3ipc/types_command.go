package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	i3ipc "github.com/wagiedev/i3ipc-go"
)

func newTypesCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "types",
		Short:       "List message and event types",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			messages := i3ipc.Messages()
			events := i3ipc.EventTypes()

			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"messages": messages,
					"events":   events,
				})
			}

			msgRows := make([][]string, 0, len(messages))
			for _, m := range messages {
				msgRows = append(msgRows, []string{
					strconv.FormatUint(uint64(m.Type), 10),
					m.Name,
					strings.Join(m.Aliases, ", "),
					string(m.Payload),
					m.Description,
				})
			}

			eventRows := make([][]string, 0, len(events))
			for i, e := range events {
				eventRows = append(eventRows, []string{
					fmt.Sprintf("0x%08x", uint32(i)|1<<31),
					string(e),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Code", "Message", "Aliases", "Payload", "Description"},
				msgRows,
				[]columnAlignment{alignRight},
			))
			fmt.Fprintln(out, renderTable(
				[]string{"Wire type", "Event"},
				eventRows,
				[]columnAlignment{alignRight},
			))

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of tables")

	return cmd
}
