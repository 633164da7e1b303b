package mcp

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	mcpgo "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/i3ipc-go/internal/catalog"
	"github.com/wagiedev/i3ipc-go/internal/client"
	"github.com/wagiedev/i3ipc-go/internal/ipctest"
	"github.com/wagiedev/i3ipc-go/internal/protocol"
)

type recordedRequest struct {
	msgType protocol.MessageType
	payload string
}

// fakeRequester records requests and answers them from a fixed table.
type fakeRequester struct {
	mu       sync.Mutex
	requests []recordedRequest
	replies  map[protocol.MessageType]any
	err      error
}

func (f *fakeRequester) RequestRaw(_ context.Context, msgType protocol.MessageType, payload string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, recordedRequest{msgType: msgType, payload: payload})
	if f.err != nil {
		return nil, f.err
	}

	return f.replies[msgType], nil
}

func (f *fakeRequester) last(t *testing.T) recordedRequest {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	require.NotEmpty(t, f.requests)

	return f.requests[len(f.requests)-1]
}

func resultText(t *testing.T, result map[string]any) string {
	t.Helper()

	content, ok := result["content"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, content, 1)

	text, _ := content[0]["text"].(string)

	return text
}

func TestNewQueryServer_RegistersEveryQuery(t *testing.T) {
	server := NewQueryServer("i3ipc", "test", &fakeRequester{})

	tools := server.ListTools()
	require.Len(t, tools, len(catalog.Queries()))

	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool["name"].(string))

		schema, ok := tool["inputSchema"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "object", schema["type"])
	}

	require.NotContains(t, names, "subscribe")
	require.Contains(t, names, "run_command")
	require.Contains(t, names, "get_tree")
	require.Contains(t, names, "sync")
}

func TestQueryTool_NoPayload(t *testing.T) {
	requester := &fakeRequester{replies: map[protocol.MessageType]any{
		protocol.GetMarks: []any{"a", "b"},
	}}
	server := NewQueryServer("i3ipc", "test", requester)

	result, err := server.CallTool(context.Background(), "get_marks", map[string]any{})
	require.NoError(t, err)
	require.Nil(t, result["is_error"])
	require.JSONEq(t, `["a","b"]`, resultText(t, result))

	require.Equal(t, recordedRequest{msgType: protocol.GetMarks}, requester.last(t))
}

func TestQueryTool_TextPayload(t *testing.T) {
	requester := &fakeRequester{replies: map[protocol.MessageType]any{
		protocol.GetBarConfig: map[string]any{"id": "bar-0", "mode": "dock"},
	}}
	server := NewQueryServer("i3ipc", "test", requester)

	result, err := server.CallTool(context.Background(), "get_bar_config", map[string]any{"bar_id": "bar-0"})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"bar-0","mode":"dock"}`, resultText(t, result))
	require.Equal(t, recordedRequest{msgType: protocol.GetBarConfig, payload: "bar-0"}, requester.last(t))

	_, err = server.CallTool(context.Background(), "get_bar_config", map[string]any{})
	require.NoError(t, err)
	require.Equal(t, recordedRequest{msgType: protocol.GetBarConfig}, requester.last(t))

	result, err = server.CallTool(context.Background(), "get_bar_config", map[string]any{"bar_id": 7})
	require.NoError(t, err)
	require.Equal(t, true, result["is_error"])
}

func TestQueryTool_RunCommand(t *testing.T) {
	t.Run("missing command", func(t *testing.T) {
		requester := &fakeRequester{}
		server := NewQueryServer("i3ipc", "test", requester)

		result, err := server.CallTool(context.Background(), "run_command", map[string]any{})
		require.NoError(t, err)
		require.Equal(t, true, result["is_error"])
		require.Contains(t, resultText(t, result), `missing required argument "command"`)
		require.Empty(t, requester.requests)
	})

	t.Run("command fails", func(t *testing.T) {
		requester := &fakeRequester{replies: map[protocol.MessageType]any{
			protocol.RunCommand: []any{map[string]any{"success": false, "error": "No such container"}},
		}}
		server := NewQueryServer("i3ipc", "test", requester)

		result, err := server.CallTool(context.Background(), "run_command", map[string]any{"command": "kill"})
		require.NoError(t, err)
		require.Equal(t, true, result["is_error"])
		require.Contains(t, resultText(t, result), "No such container")
		require.Equal(t, recordedRequest{msgType: protocol.RunCommand, payload: "kill"}, requester.last(t))
	})
}

func TestQueryTool_Sync(t *testing.T) {
	requester := &fakeRequester{replies: map[protocol.MessageType]any{
		protocol.Sync: map[string]any{"success": true},
	}}
	server := NewQueryServer("i3ipc", "test", requester)

	result, err := server.CallTool(context.Background(), "sync", map[string]any{"window": 4194307, "rnd": 9})
	require.NoError(t, err)
	require.Nil(t, result["is_error"])
	require.JSONEq(t, `{"window":4194307,"rnd":9}`, requester.last(t).payload)

	for _, args := range []map[string]any{
		{},
		{"window": -1},
		{"window": 1.5},
		{"window": "0x400003"},
		{"window": 1, "rnd": 5000000000},
	} {
		result, err := server.CallTool(context.Background(), "sync", args)
		require.NoError(t, err)
		require.Equal(t, true, result["is_error"], "args %v", args)
	}
}

func TestQueryTool_RequesterError(t *testing.T) {
	requester := &fakeRequester{err: errors.New("i3 IPC dial /tmp/ipc.sock: connection refused")}
	server := NewQueryServer("i3ipc", "test", requester)

	result, err := server.CallTool(context.Background(), "get_version", map[string]any{})
	require.NoError(t, err)
	require.Equal(t, true, result["is_error"])
	require.Contains(t, resultText(t, result), "connection refused")
}

func TestQueryTool_AgainstFakePeer(t *testing.T) {
	srv := ipctest.NewServer(t)
	srv.Reply(protocol.GetBindingState, `{"name":"default"}`)

	c := client.New(srv.Path(), nil)
	defer c.Close()

	server := NewQueryServer("i3ipc", "test", c)

	result, err := server.CallTool(context.Background(), "get_binding_state", map[string]any{})
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"default"}`, resultText(t, result))
}

func TestServerRun_ServesToolsOverTransport(t *testing.T) {
	requester := &fakeRequester{replies: map[protocol.MessageType]any{
		protocol.GetVersion: map[string]any{"human_readable": "4.23"},
	}}
	server := NewQueryServer("i3ipc", "test", requester)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientTransport, serverTransport := mcpgo.NewInMemoryTransports()

	runErr := make(chan error, 1)

	go func() {
		runErr <- server.Run(ctx, serverTransport)
	}()

	mcpClient := mcpgo.NewClient(&mcpgo.Implementation{Name: "test-client", Version: "1.0.0"}, nil)

	session, err := mcpClient.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	listed, err := session.ListTools(ctx, &mcpgo.ListToolsParams{})
	require.NoError(t, err)
	require.Len(t, listed.Tools, len(catalog.Queries()))

	result, err := session.CallTool(ctx, &mcpgo.CallToolParams{
		Name:      "get_version",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(*mcpgo.TextContent)
	require.True(t, ok)
	require.JSONEq(t, `{"human_readable":"4.23"}`, text.Text)

	require.NoError(t, session.Close())

	select {
	case <-runErr:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after the client disconnected")
	}
}
