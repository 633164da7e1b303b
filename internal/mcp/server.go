package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server holds a registry of tools that can be called directly or served
// through the official MCP SDK server.
type Server struct {
	name    string
	version string
	mu      sync.RWMutex
	tools   map[string]*registeredTool
}

// registeredTool holds tool metadata and handler for the registry.
type registeredTool struct {
	tool    *mcp.Tool
	handler mcp.ToolHandler
}

// NewServer creates an empty server.
func NewServer(name, version string) *Server {
	return &Server{
		name:    name,
		version: version,
		tools:   make(map[string]*registeredTool, 16),
	}
}

// AddTool registers a tool with the server, replacing any tool of the same name.
func (s *Server) AddTool(tool *mcp.Tool, handler mcp.ToolHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools[tool.Name] = &registeredTool{
		tool:    tool,
		handler: handler,
	}
}

// Name returns the server name.
func (s *Server) Name() string {
	return s.name
}

// Version returns the server version.
func (s *Server) Version() string {
	return s.version
}

// Tools returns the registered tools sorted by name.
func (s *Server) Tools() []*mcp.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*mcp.Tool, 0, len(s.tools))
	for _, t := range s.tools {
		out = append(out, t.tool)
	}

	slices.SortFunc(out, func(a, b *mcp.Tool) int {
		return strings.Compare(a.Name, b.Name)
	})

	return out
}

// ListTools returns metadata for all registered tools as plain maps,
// sorted by name.
func (s *Server) ListTools() []map[string]any {
	tools := s.Tools()

	result := make([]map[string]any, 0, len(tools))
	for _, t := range tools {
		toolMap := map[string]any{
			"name":        t.Name,
			"description": t.Description,
		}

		if t.InputSchema != nil {
			schemaData, err := json.Marshal(t.InputSchema)
			if err == nil {
				var schemaMap map[string]any
				if json.Unmarshal(schemaData, &schemaMap) == nil {
					toolMap["inputSchema"] = schemaMap
				}
			}
		}

		result = append(result, toolMap)
	}

	return result
}

// CallTool executes a tool by name with the given input. Tool failures are
// reported in the result map, never as an error.
func (s *Server) CallTool(ctx context.Context, name string, input map[string]any) (map[string]any, error) {
	s.mu.RLock()
	t, exists := s.tools[name]
	s.mu.RUnlock()

	if !exists {
		return map[string]any{
			"content":  []map[string]any{{"type": "text", "text": "Tool not found: " + name}},
			"is_error": true,
		}, nil
	}

	inputBytes, err := json.Marshal(input)
	if err != nil {
		//nolint:nilerr // Intentionally return nil error - error is encoded in the result
		return map[string]any{
			"content":  []map[string]any{{"type": "text", "text": "Failed to marshal input: " + err.Error()}},
			"is_error": true,
		}, nil
	}

	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Name:      name,
			Arguments: inputBytes,
		},
	}

	result, err := t.handler(ctx, req)
	if err != nil {
		//nolint:nilerr // Intentionally return nil error - error is encoded in the result
		return map[string]any{
			"content":  []map[string]any{{"type": "text", "text": "Tool execution failed: " + err.Error()}},
			"is_error": true,
		}, nil
	}

	return convertCallToolResultToMap(result), nil
}

// MCPServer builds an official SDK server carrying every registered tool.
func (s *Server) MCPServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: s.name, Version: s.version}, nil)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tools {
		server.AddTool(t.tool, t.handler)
	}

	return server
}

// Run serves the registered tools over transport until the client
// disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	if err := s.MCPServer().Run(ctx, transport); err != nil {
		return fmt.Errorf("run mcp server: %w", err)
	}

	return nil
}

// convertCallToolResultToMap converts an MCP CallToolResult to a plain map.
func convertCallToolResultToMap(result *mcp.CallToolResult) map[string]any {
	if result == nil {
		return map[string]any{
			"content": []map[string]any{},
		}
	}

	content := make([]map[string]any, 0, len(result.Content))
	for _, c := range result.Content {
		switch v := c.(type) {
		case *mcp.TextContent:
			content = append(content, map[string]any{
				"type": "text",
				"text": v.Text,
			})
		case *mcp.ImageContent:
			content = append(content, map[string]any{
				"type":     "image",
				"data":     v.Data,
				"mimeType": v.MIMEType,
			})
		}
	}

	resultMap := map[string]any{
		"content": content,
	}

	if result.IsError {
		resultMap["is_error"] = true
	}

	return resultMap
}

// ObjectSchema creates an object schema from a simple type map.
//
// Input format: {"window": "uint32", "command": "string"}. Only the
// properties named in required are marked required.
func ObjectSchema(props map[string]string, required ...string) *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(props))
	for name, goType := range props {
		properties[name] = goTypeToJSONSchema(goType)
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
		Required:   slices.Clone(required),
	}
}

// goTypeToJSONSchema converts a Go type string to a JSON Schema type.
func goTypeToJSONSchema(goType string) *jsonschema.Schema {
	switch goType {
	case "string":
		return &jsonschema.Schema{Type: "string"}
	case "int", "int32", "int64":
		return &jsonschema.Schema{Type: "integer"}
	case "uint", "uint32", "uint64":
		minimum := 0.0

		return &jsonschema.Schema{Type: "integer", Minimum: &minimum}
	case "bool", "boolean":
		return &jsonschema.Schema{Type: "boolean"}
	default:
		return &jsonschema.Schema{Type: "string"}
	}
}

// TextResult creates a CallToolResult with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// ErrorResult creates a CallToolResult indicating an error.
func ErrorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}
}

// NewTool creates an mcp.Tool with the given parameters.
func NewTool(name, description string, inputSchema *jsonschema.Schema) *mcp.Tool {
	return &mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: inputSchema,
	}
}

// ParseArguments unmarshals CallToolRequest arguments into a map.
func ParseArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	if req == nil || req.Params == nil {
		return make(map[string]any), nil
	}

	if len(req.Params.Arguments) == 0 {
		return make(map[string]any), nil
	}

	var args map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return nil, fmt.Errorf("failed to unmarshal arguments: %w", err)
	}

	return args, nil
}
