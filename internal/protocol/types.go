package protocol

import (
	"fmt"
	"slices"

	"github.com/wagiedev/i3ipc-go/internal/errors"
)

// MessageType identifies a request kind and the reply that answers it.
type MessageType uint32

const (
	// RunCommand runs the payload as i3 commands.
	RunCommand MessageType = iota
	// GetWorkspaces returns the list of workspaces.
	GetWorkspaces
	// Subscribe subscribes the connection to the events in the payload.
	Subscribe
	// GetOutputs returns the list of outputs.
	GetOutputs
	// GetTree returns the layout tree.
	GetTree
	// GetMarks returns the names of all marks.
	GetMarks
	// GetBarConfig returns the bar ids, or the config of the bar in the payload.
	GetBarConfig
	// GetVersion returns the version of the window manager.
	GetVersion
	// GetBindingModes returns the names of all binding modes.
	GetBindingModes
	// GetConfig returns the last loaded config file.
	GetConfig
	// SendTick sends a tick event with the payload to all tick subscribers.
	SendTick
	// Sync sends an i3 sync event to the window given in the payload.
	Sync
	// GetBindingState returns the currently active binding mode.
	GetBindingState
)

var messageTypeNames = [...]string{
	RunCommand:      "run_command",
	GetWorkspaces:   "get_workspaces",
	Subscribe:       "subscribe",
	GetOutputs:      "get_outputs",
	GetTree:         "get_tree",
	GetMarks:        "get_marks",
	GetBarConfig:    "get_bar_config",
	GetVersion:      "get_version",
	GetBindingModes: "get_binding_modes",
	GetConfig:       "get_config",
	SendTick:        "send_tick",
	Sync:            "sync",
	GetBindingState: "get_binding_state",
}

// Valid reports whether t is one of the known message types.
func (t MessageType) Valid() bool {
	return int(t) < len(messageTypeNames)
}

func (t MessageType) String() string {
	if t.Valid() {
		return messageTypeNames[t]
	}

	return fmt.Sprintf("message_type(%d)", uint32(t))
}

// MessageTypes returns every known message type in code order.
func MessageTypes() []MessageType {
	out := make([]MessageType, len(messageTypeNames))
	for i := range out {
		out[i] = MessageType(i)
	}

	return out
}

// EventType names a category of asynchronous notification.
type EventType string

const (
	// EventWorkspace fires when the focused workspace or workspace set changes.
	EventWorkspace EventType = "workspace"
	// EventOutput fires when RandR output configuration changes.
	EventOutput EventType = "output"
	// EventMode fires when the binding mode changes.
	EventMode EventType = "mode"
	// EventWindow fires when a window changes.
	EventWindow EventType = "window"
	// EventBarConfigUpdate fires when a bar config changes.
	EventBarConfigUpdate EventType = "barconfig_update"
	// EventBinding fires when a binding runs.
	EventBinding EventType = "binding"
	// EventShutdown fires when the window manager is about to restart or exit.
	EventShutdown EventType = "shutdown"
	// EventTick fires on send_tick requests and right after subscribing to tick.
	EventTick EventType = "tick"
)

// EventFlag is the bit set in the wire type of every event frame.
const EventFlag uint32 = 1 << 31

// eventTypes is indexed by the masked event code.
var eventTypes = []EventType{
	EventWorkspace,
	EventOutput,
	EventMode,
	EventWindow,
	EventBarConfigUpdate,
	EventBinding,
	EventShutdown,
	EventTick,
}

// EventTypes returns every known event type in code order.
func EventTypes() []EventType {
	return slices.Clone(eventTypes)
}

// EventTypeFromCode maps a masked event code to its name.
func EventTypeFromCode(code uint32) (EventType, error) {
	code &^= EventFlag
	if int(code) >= len(eventTypes) {
		return "", fmt.Errorf("%w: code %d", errors.ErrUnknownEventType, code)
	}

	return eventTypes[code], nil
}

// Code returns the masked wire code of the event type.
func (e EventType) Code() (uint32, bool) {
	i := slices.Index(eventTypes, e)
	if i < 0 {
		return 0, false
	}

	return uint32(i), true
}

// ParseEventType validates an event name.
func ParseEventType(name string) (EventType, error) {
	e := EventType(name)
	if _, ok := e.Code(); !ok {
		return "", fmt.Errorf("%w: %q", errors.ErrUnknownEventType, name)
	}

	return e, nil
}
