package i3ipc

import (
	"fmt"

	"github.com/wagiedev/i3ipc-go/internal/catalog"
	"github.com/wagiedev/i3ipc-go/internal/protocol"
	"github.com/wagiedev/i3ipc-go/internal/subscription"
)

// MessageType identifies a request kind and the reply that answers it.
type MessageType = protocol.MessageType

// Message types, in wire code order.
const (
	RunCommand      = protocol.RunCommand
	GetWorkspaces   = protocol.GetWorkspaces
	Subscribe       = protocol.Subscribe
	GetOutputs      = protocol.GetOutputs
	GetTree         = protocol.GetTree
	GetMarks        = protocol.GetMarks
	GetBarConfig    = protocol.GetBarConfig
	GetVersion      = protocol.GetVersion
	GetBindingModes = protocol.GetBindingModes
	GetConfig       = protocol.GetConfig
	SendTick        = protocol.SendTick
	Sync            = protocol.Sync
	GetBindingState = protocol.GetBindingState
)

// EventType names a category of asynchronous notification.
type EventType = protocol.EventType

// Event types that can be subscribed to.
const (
	EventWorkspace       = protocol.EventWorkspace
	EventOutput          = protocol.EventOutput
	EventMode            = protocol.EventMode
	EventWindow          = protocol.EventWindow
	EventBarConfigUpdate = protocol.EventBarConfigUpdate
	EventBinding         = protocol.EventBinding
	EventShutdown        = protocol.EventShutdown
	EventTick            = protocol.EventTick
)

// EventTypes returns every known event type in code order.
func EventTypes() []EventType {
	return protocol.EventTypes()
}

// ParseEventType validates an event name.
func ParseEventType(name string) (EventType, error) {
	return protocol.ParseEventType(name)
}

// Handler receives one event. Returning an error ends the subscription.
// A handler must not call Close on its subscription or on the Client that
// opened it; both wait for the handler to return.
type Handler = subscription.Handler

// Subscription is a live event stream. It is stopped with Close, or ends on
// its own when the connection fails or the handler returns an error; Err then
// reports why.
type Subscription = subscription.Subscription

// MessageInfo describes a message type: its names and payload kind.
type MessageInfo = catalog.Message

// Messages returns a description of every message type in code order.
func Messages() []MessageInfo {
	return catalog.All()
}

// LookupMessage finds a message type by name or alias, such as "get_tree",
// "tree" or "command". It reports ErrUnknownMessageType for unknown names.
func LookupMessage(name string) (MessageType, error) {
	m := catalog.ByName(name)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMessageType, name)
	}

	return m.Type, nil
}
