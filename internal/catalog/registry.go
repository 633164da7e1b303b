package catalog

import "github.com/wagiedev/i3ipc-go/internal/protocol"

// registry is indexed by message type code.
var registry = []Message{
	{
		Type:        protocol.RunCommand,
		Name:        "run_command",
		Aliases:     []string{"command", "cmd"},
		Payload:     PayloadText,
		Argument:    "command",
		Description: "Run one or more i3 commands and report the result of each.",
	},
	{
		Type:        protocol.GetWorkspaces,
		Name:        "get_workspaces",
		Payload:     PayloadNone,
		Description: "List all workspaces with their output, focus and visibility.",
	},
	{
		Type:        protocol.Subscribe,
		Name:        "subscribe",
		Payload:     PayloadJSON,
		Argument:    "events",
		Description: "Subscribe the connection to a JSON array of event names.",
	},
	{
		Type:        protocol.GetOutputs,
		Name:        "get_outputs",
		Payload:     PayloadNone,
		Description: "List all outputs with their geometry and current workspace.",
	},
	{
		Type:        protocol.GetTree,
		Name:        "get_tree",
		Payload:     PayloadNone,
		Description: "Return the full layout tree of containers.",
	},
	{
		Type:        protocol.GetMarks,
		Name:        "get_marks",
		Payload:     PayloadNone,
		Description: "List the names of all currently set marks.",
	},
	{
		Type:        protocol.GetBarConfig,
		Name:        "get_bar_config",
		Payload:     PayloadText,
		Argument:    "bar_id",
		Description: "List bar ids, or return the configuration of the given bar.",
	},
	{
		Type:        protocol.GetVersion,
		Name:        "get_version",
		Payload:     PayloadNone,
		Description: "Return the version of the running window manager.",
	},
	{
		Type:        protocol.GetBindingModes,
		Name:        "get_binding_modes",
		Payload:     PayloadNone,
		Description: "List the names of all configured binding modes.",
	},
	{
		Type:        protocol.GetConfig,
		Name:        "get_config",
		Payload:     PayloadNone,
		Description: "Return the contents of the last loaded config file.",
	},
	{
		Type:        protocol.SendTick,
		Name:        "send_tick",
		Aliases:     []string{"tick"},
		Payload:     PayloadText,
		Argument:    "payload",
		Description: "Broadcast a tick event carrying the payload to tick subscribers.",
	},
	{
		Type:        protocol.Sync,
		Name:        "sync",
		Payload:     PayloadJSON,
		Argument:    "window",
		Description: "Send an i3 sync client message to the given X11 window.",
	},
	{
		Type:        protocol.GetBindingState,
		Name:        "get_binding_state",
		Payload:     PayloadNone,
		Description: "Return the name of the currently active binding mode.",
	},
}
