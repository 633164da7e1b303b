package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	i3ipc "github.com/wagiedev/i3ipc-go"
)

func newMCPCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the query message types as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withClient(cmd, func(runCtx context.Context, client i3ipc.Client) error {
				return i3ipc.NewMCPServer(client, version).Run(runCtx, &mcp.StdioTransport{})
			})
		},
	}
}
