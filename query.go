package i3ipc

import "context"

// Query sends one request and returns the decoded reply.
//
// The payload is encoded as JSON unless it is nil (empty payload) or a
// string, which is sent verbatim as run_command, get_bar_config and
// send_tick expect.
//
// Example usage:
//
//	workspaces, err := i3ipc.Query(ctx, i3ipc.GetWorkspaces, nil)
//	reply, err := i3ipc.Query(ctx, i3ipc.RunCommand, "workspace 2")
func Query(ctx context.Context, msgType MessageType, payload any, opts ...Option) (any, error) {
	var reply any

	err := WithClient(ctx, func(c Client) error {
		var err error

		if text, ok := payload.(string); ok {
			reply, err = c.RequestRaw(ctx, msgType, text)
		} else {
			reply, err = c.Request(ctx, msgType, payload)
		}

		return err
	}, opts...)

	return reply, err
}
