package mcp

import (
	"context"
	"errors"
	"fmt"
	"testing"

	mcpgo "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// syncHandler echoes the window and rnd arguments of a sync call.
func syncHandler(_ context.Context, req *mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	args, err := ParseArguments(req)
	if err != nil {
		return nil, err
	}

	window, ok := args["window"].(float64)
	if !ok {
		return ErrorResult("window is required"), nil
	}

	rnd, _ := args["rnd"].(float64)

	return TextResult(fmt.Sprintf(`{"success":true,"window":%d,"rnd":%d}`, uint32(window), uint32(rnd))), nil
}

func newSyncServer() *Server {
	server := NewServer("i3ipc", "1.2.3")
	server.AddTool(
		NewTool("sync", "Send an i3 sync client message",
			ObjectSchema(map[string]string{"window": "uint32", "rnd": "uint32"}, "window")),
		syncHandler,
	)
	server.AddTool(
		NewTool("run_command", "Run i3 commands",
			ObjectSchema(map[string]string{"command": "string"}, "command")),
		func(context.Context, *mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
			return nil, errors.New("connect: no such file or directory")
		},
	)

	return server
}

func TestServer_Metadata(t *testing.T) {
	server := NewServer("i3ipc", "1.2.3")

	require.Equal(t, "i3ipc", server.Name())
	require.Equal(t, "1.2.3", server.Version())
	require.Empty(t, server.Tools())
}

func TestServer_ListTools(t *testing.T) {
	tools := newSyncServer().ListTools()
	require.Len(t, tools, 2)

	require.Equal(t, "run_command", tools[0]["name"])
	require.Equal(t, "sync", tools[1]["name"])
	require.Equal(t, "Send an i3 sync client message", tools[1]["description"])

	schema, ok := tools[1]["inputSchema"].(map[string]any)
	require.True(t, ok, "input schema should serialize to a map")
	require.Equal(t, "object", schema["type"])
	require.Equal(t, []any{"window"}, schema["required"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, props, "window")
	require.Contains(t, props, "rnd")
}

func TestServer_AddToolReplacesByName(t *testing.T) {
	server := newSyncServer()
	server.AddTool(NewTool("sync", "replacement", ObjectSchema(nil)), syncHandler)

	tools := server.Tools()
	require.Len(t, tools, 2)
	require.Equal(t, "replacement", tools[1].Description)
}

func TestServer_CallTool(t *testing.T) {
	tests := []struct {
		name      string
		tool      string
		input     map[string]any
		wantText  string
		wantError bool
	}{
		{
			name:     "sync with window and rnd",
			tool:     "sync",
			input:    map[string]any{"window": 94371842, "rnd": 7},
			wantText: `{"success":true,"window":94371842,"rnd":7}`,
		},
		{
			name:     "sync without rnd",
			tool:     "sync",
			input:    map[string]any{"window": 1},
			wantText: `{"success":true,"window":1,"rnd":0}`,
		},
		{
			name:      "sync without window",
			tool:      "sync",
			input:     map[string]any{"rnd": 7},
			wantText:  "window is required",
			wantError: true,
		},
		{
			name:      "handler error",
			tool:      "run_command",
			input:     map[string]any{"command": "workspace 2"},
			wantText:  "Tool execution failed: connect: no such file or directory",
			wantError: true,
		},
		{
			name:      "unknown tool",
			tool:      "get_scratchpad",
			input:     map[string]any{},
			wantText:  "Tool not found: get_scratchpad",
			wantError: true,
		},
	}

	server := newSyncServer()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := server.CallTool(context.Background(), tt.tool, tt.input)
			require.NoError(t, err, "tool failures are reported in the result")

			content, ok := result["content"].([]map[string]any)
			require.True(t, ok)
			require.Len(t, content, 1)
			require.Equal(t, tt.wantText, content[0]["text"])

			if tt.wantError {
				require.Equal(t, true, result["is_error"])
			} else {
				require.NotContains(t, result, "is_error")
			}
		})
	}
}

func TestConvertCallToolResultToMap(t *testing.T) {
	tests := []struct {
		name   string
		result *mcpgo.CallToolResult
		want   map[string]any
	}{
		{
			name:   "nil",
			result: nil,
			want:   map[string]any{"content": []map[string]any{}},
		},
		{
			name:   "marks reply",
			result: TextResult(`["mail","music"]`),
			want: map[string]any{"content": []map[string]any{
				{"type": "text", "text": `["mail","music"]`},
			}},
		},
		{
			name:   "failed command",
			result: ErrorResult(`Unknown command: [{"success":false,"error":"Unknown command"}]`),
			want: map[string]any{
				"content": []map[string]any{
					{"type": "text", "text": `Unknown command: [{"success":false,"error":"Unknown command"}]`},
				},
				"is_error": true,
			},
		},
		{
			name: "output screenshot",
			result: &mcpgo.CallToolResult{Content: []mcpgo.Content{
				&mcpgo.ImageContent{Data: []byte("png"), MIMEType: "image/png"},
			}},
			want: map[string]any{"content": []map[string]any{
				{"type": "image", "data": []byte("png"), "mimeType": "image/png"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, convertCallToolResultToMap(tt.result))
		})
	}
}

func TestGoTypeToJSONSchema(t *testing.T) {
	tests := []struct {
		argument    string
		goType      string
		wantType    string
		wantMinimum bool
	}{
		{argument: "window", goType: "uint32", wantType: "integer", wantMinimum: true},
		{argument: "rnd", goType: "uint", wantType: "integer", wantMinimum: true},
		{argument: "command", goType: "string", wantType: "string"},
		{argument: "bar_id", goType: "string", wantType: "string"},
		{argument: "offset", goType: "int", wantType: "integer"},
		{argument: "urgent", goType: "bool", wantType: "boolean"},
		{argument: "payload", goType: "json.RawMessage", wantType: "string"},
	}

	for _, tt := range tests {
		t.Run(tt.argument, func(t *testing.T) {
			schema := goTypeToJSONSchema(tt.goType)
			require.Equal(t, tt.wantType, schema.Type)

			if tt.wantMinimum {
				require.NotNil(t, schema.Minimum)
				require.Zero(t, *schema.Minimum)
			} else {
				require.Nil(t, schema.Minimum)
			}
		})
	}
}

func TestObjectSchema_Required(t *testing.T) {
	required := []string{"window"}
	schema := ObjectSchema(map[string]string{"window": "uint32", "rnd": "uint32"}, required...)

	required[0] = "rnd"
	require.Equal(t, []string{"window"}, schema.Required, "required names are copied")
	require.Len(t, schema.Properties, 2)

	noArgs := ObjectSchema(nil)
	require.Equal(t, "object", noArgs.Type)
	require.Empty(t, noArgs.Properties)
	require.Empty(t, noArgs.Required)
}

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name    string
		req     *mcpgo.CallToolRequest
		want    map[string]any
		wantErr bool
	}{
		{name: "nil request", req: nil, want: map[string]any{}},
		{
			name: "get_tree without arguments",
			req:  &mcpgo.CallToolRequest{Params: &mcpgo.CallToolParamsRaw{Name: "get_tree"}},
			want: map[string]any{},
		},
		{
			name: "sync arguments",
			req: &mcpgo.CallToolRequest{Params: &mcpgo.CallToolParamsRaw{
				Name:      "sync",
				Arguments: []byte(`{"window":94371842,"rnd":7}`),
			}},
			want: map[string]any{"window": float64(94371842), "rnd": float64(7)},
		},
		{
			name: "run_command arguments",
			req: &mcpgo.CallToolRequest{Params: &mcpgo.CallToolParamsRaw{
				Name:      "run_command",
				Arguments: []byte(`{"command":"workspace 2; focus left"}`),
			}},
			want: map[string]any{"command": "workspace 2; focus left"},
		},
		{
			name: "truncated arguments",
			req: &mcpgo.CallToolRequest{Params: &mcpgo.CallToolParamsRaw{
				Name:      "run_command",
				Arguments: []byte(`{"command":`),
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := ParseArguments(tt.req)
			if tt.wantErr {
				require.ErrorContains(t, err, "failed to unmarshal arguments")
				require.Nil(t, args)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, args)
		})
	}
}
