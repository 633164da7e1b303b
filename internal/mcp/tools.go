package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/i3ipc-go/internal/catalog"
	"github.com/wagiedev/i3ipc-go/internal/protocol"
)

// Requester performs one-shot requests. *client.Client satisfies it.
type Requester interface {
	RequestRaw(ctx context.Context, msgType protocol.MessageType, payload string) (any, error)
}

// NewQueryServer returns a server with one tool per query message type,
// each backed by requester.
func NewQueryServer(name, version string, requester Requester) *Server {
	s := NewServer(name, version)

	for _, m := range catalog.Queries() {
		s.AddTool(NewTool(m.Name, m.Description, inputSchema(m)), queryHandler(m, requester))
	}

	return s
}

func inputSchema(m catalog.Message) *jsonschema.Schema {
	switch {
	case m.Type == protocol.Sync:
		return ObjectSchema(map[string]string{"window": "uint32", "rnd": "uint32"}, "window")
	case m.Type == protocol.RunCommand:
		return ObjectSchema(map[string]string{m.Argument: "string"}, m.Argument)
	case m.TakesPayload():
		return ObjectSchema(map[string]string{m.Argument: "string"})
	default:
		return ObjectSchema(nil)
	}
}

// queryHandler adapts one catalog entry to an mcp.ToolHandler. The reply is
// returned as JSON text; every failure becomes an error result.
func queryHandler(m catalog.Message, requester Requester) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := ParseArguments(req)
		if err != nil {
			return ErrorResult(fmt.Sprintf("failed to parse arguments: %v", err)), nil
		}

		payload, err := buildPayload(m, args)
		if err != nil {
			return ErrorResult(err.Error()), nil
		}

		reply, err := requester.RequestRaw(ctx, m.Type, payload)
		if err != nil {
			return ErrorResult(err.Error()), nil
		}

		data, err := json.Marshal(reply)
		if err != nil {
			return ErrorResult(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}

		if m.Type == protocol.RunCommand {
			if err := protocol.CheckCommandReply(reply); err != nil {
				return ErrorResult(fmt.Sprintf("%v: %s", err, data)), nil
			}
		}

		return TextResult(string(data)), nil
	}
}

func buildPayload(m catalog.Message, args map[string]any) (string, error) {
	switch {
	case m.Type == protocol.Sync:
		window, err := uint32Arg(args, "window", true)
		if err != nil {
			return "", err
		}

		rnd, err := uint32Arg(args, "rnd", false)
		if err != nil {
			return "", err
		}

		data, err := json.Marshal(map[string]uint32{"window": window, "rnd": rnd})
		if err != nil {
			return "", fmt.Errorf("marshal sync payload: %w", err)
		}

		return string(data), nil

	case !m.TakesPayload():
		return "", nil

	default:
		v, ok := args[m.Argument]
		if !ok {
			if m.Type == protocol.RunCommand {
				return "", fmt.Errorf("missing required argument %q", m.Argument)
			}

			return "", nil
		}

		text, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("argument %q must be a string", m.Argument)
		}

		return text, nil
	}
}

func uint32Arg(args map[string]any, name string, required bool) (uint32, error) {
	v, ok := args[name]
	if !ok {
		if required {
			return 0, fmt.Errorf("missing required argument %q", name)
		}

		return 0, nil
	}

	f, ok := v.(float64)
	if !ok || f < 0 || f > math.MaxUint32 || f != math.Trunc(f) {
		return 0, fmt.Errorf("argument %q must be an unsigned 32-bit integer", name)
	}

	return uint32(f), nil
}
