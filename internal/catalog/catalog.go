// Package catalog describes every i3 IPC message type: its canonical name,
// the spellings accepted on the command line, and the kind of payload it
// carries. It is the source of truth for the CLI and the MCP tool bridge.
package catalog

import (
	"slices"
	"strings"

	"github.com/wagiedev/i3ipc-go/internal/protocol"
)

// PayloadKind describes how a request payload is encoded.
type PayloadKind string

const (
	// PayloadNone means the request is sent with an empty payload.
	PayloadNone PayloadKind = "none"
	// PayloadText means the payload is sent verbatim.
	PayloadText PayloadKind = "text"
	// PayloadJSON means the payload is a JSON document.
	PayloadJSON PayloadKind = "json"
)

// Message holds metadata for a single message type.
type Message struct {
	// Type is the numeric wire code.
	Type protocol.MessageType
	// Name is the canonical snake_case name (e.g. "get_tree").
	Name string
	// Aliases are extra names accepted by the CLI (e.g. "command").
	Aliases []string
	// Payload is the kind of payload the request carries.
	Payload PayloadKind
	// Argument names the payload argument exposed to tool callers.
	// Empty when the request takes no payload.
	Argument string
	// Description is a one-line summary of what the request does.
	Description string
}

// TakesPayload reports whether the request carries a payload.
func (m Message) TakesPayload() bool {
	return m.Payload != PayloadNone
}

// Names returns the canonical name followed by the aliases.
func (m Message) Names() []string {
	return append([]string{m.Name}, m.Aliases...)
}

// All returns a copy of every message type in code order.
func All() []Message {
	out := make([]Message, len(registry))
	for i, m := range registry {
		m.Aliases = slices.Clone(m.Aliases)
		out[i] = m
	}

	return out
}

// ByName looks up a message type by name. It checks in order:
//  1. Exact match on Name
//  2. Alias match
//  3. Name with a "get_" prefix added (so "tree" finds "get_tree")
//
// Matching ignores case and treats '-' like '_'. Returns nil if nothing
// matches.
func ByName(name string) *Message {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	if name == "" {
		return nil
	}

	for i := range registry {
		if registry[i].Name == name {
			return clone(registry[i])
		}
	}

	for i := range registry {
		if slices.Contains(registry[i].Aliases, name) {
			return clone(registry[i])
		}
	}

	for i := range registry {
		if registry[i].Name == "get_"+name {
			return clone(registry[i])
		}
	}

	return nil
}

// ByType returns the entry for a message type, or nil if it is unknown.
func ByType(t protocol.MessageType) *Message {
	if !t.Valid() {
		return nil
	}

	return clone(registry[t])
}

// Queries returns every message type that is answered by a single reply,
// which is all of them except subscribe.
func Queries() []Message {
	out := make([]Message, 0, len(registry)-1)

	for _, m := range All() {
		if m.Type != protocol.Subscribe {
			out = append(out, m)
		}
	}

	return out
}

func clone(m Message) *Message {
	m.Aliases = slices.Clone(m.Aliases)

	return &m
}
