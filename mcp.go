package i3ipc

import (
	internalmcp "github.com/wagiedev/i3ipc-go/internal/mcp"
)

// MCPServer exposes the query message types as Model Context Protocol
// tools. Call Run to serve them over an MCP transport, or ListTools and
// CallTool to use them in-process.
type MCPServer = internalmcp.Server

// NewMCPServer returns a server with one tool per message type except
// subscribe, backed by client.
//
// Example usage:
//
//	server := i3ipc.NewMCPServer(client, "0.1.0")
//	err := server.Run(ctx, &mcp.StdioTransport{})
func NewMCPServer(client Client, version string) *MCPServer {
	return internalmcp.NewQueryServer("i3ipc", version, client)
}
