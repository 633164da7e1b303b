// Package mcp exposes i3 IPC queries as Model Context Protocol tools.
//
// Server keeps its own tool registry so tools can be listed and invoked
// in-process, and can also be served to MCP clients over any transport
// supported by the official SDK (stdio in the CLI).
//
// One tool is registered per query message type; subscribe is left out
// because a tool call has no way to stream events back.
package mcp
