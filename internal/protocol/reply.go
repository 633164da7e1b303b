package protocol

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/wagiedev/i3ipc-go/internal/errors"
)

// subscribeReplySchema describes the reply to a subscribe request:
//
//	{"success": true}
var subscribeReplySchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"success": {Type: "boolean"},
	},
	Required: []string{"success"},
}

// commandReplySchema describes the reply to a run_command request, one
// entry per command in the payload:
//
//	[{"success": true}, {"success": false, "error": "Unknown command"}]
var commandReplySchema = &jsonschema.Schema{
	Type: "array",
	Items: &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"success":     {Type: "boolean"},
			"error":       {Type: "string"},
			"parse_error": {Type: "boolean"},
		},
		Required: []string{"success"},
	},
}

var (
	resolvedSubscribeReply = sync.OnceValues(func() (*jsonschema.Resolved, error) {
		return subscribeReplySchema.Resolve(nil)
	})
	resolvedCommandReply = sync.OnceValues(func() (*jsonschema.Resolved, error) {
		return commandReplySchema.Resolve(nil)
	})
)

// errInvalidUTF8 is the cause of a ProtocolError for payloads that are not
// UTF-8. encoding/json would otherwise substitute U+FFFD and succeed.
var errInvalidUTF8 = stderrors.New("payload is not valid UTF-8")

// DecodePayload parses a frame payload as UTF-8 JSON text.
func DecodePayload(payload []byte) (any, error) {
	if !utf8.Valid(payload) {
		return nil, &errors.ProtocolError{Raw: string(payload), Err: errInvalidUTF8}
	}

	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, &errors.ProtocolError{Raw: string(payload), Err: err}
	}

	return v, nil
}

// CheckSubscribeReply verifies that a subscribe reply reports success.
// Any failure, including a reply that is not JSON, is a SubscriptionError
// carrying the raw reply.
func CheckSubscribeReply(payload []byte) error {
	v, err := DecodePayload(payload)
	if err != nil {
		return &errors.SubscriptionError{Reply: string(payload), Err: err}
	}

	if err := validate(resolvedSubscribeReply, v); err != nil {
		return &errors.SubscriptionError{Reply: string(payload), Err: err}
	}

	if ok, _ := v.(map[string]any)["success"].(bool); !ok {
		return &errors.SubscriptionError{Reply: string(payload)}
	}

	return nil
}

// CheckCommandReply inspects a decoded run_command reply and returns a
// CommandError for the first command that did not succeed.
func CheckCommandReply(v any) error {
	if err := validate(resolvedCommandReply, v); err != nil {
		raw, _ := json.Marshal(v)

		return &errors.ProtocolError{Raw: string(raw), Err: err}
	}

	for i, item := range v.([]any) {
		result, _ := item.(map[string]any)
		if ok, _ := result["success"].(bool); ok {
			continue
		}

		msg, _ := result["error"].(string)

		return &errors.CommandError{Index: i, Message: msg}
	}

	return nil
}

func validate(resolve func() (*jsonschema.Resolved, error), v any) error {
	resolved, err := resolve()
	if err != nil {
		return fmt.Errorf("resolve reply schema: %w", err)
	}

	if err := resolved.Validate(v); err != nil {
		return fmt.Errorf("unexpected reply shape: %w", err)
	}

	return nil
}
