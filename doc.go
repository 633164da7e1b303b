// Package i3ipc is a client for the IPC interface of the i3 window manager
// and compatible window managers such as sway.
//
// It supports one-shot requests (run a command, fetch the layout tree,
// workspaces, outputs and so on) and long-lived subscriptions that deliver
// asynchronous events to a handler.
//
// # Basic Usage
//
// For a single request, use the Query function:
//
//	tree, err := i3ipc.Query(ctx, i3ipc.GetTree, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Clients
//
// NewClient resolves the socket path once and returns a Client that can be
// shared between goroutines. Every request opens its own connection:
//
//	client, err := i3ipc.NewClient(ctx, i3ipc.WithLogger(slog.Default()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	if _, err := client.RunCommand(ctx, "workspace 2"); err != nil {
//	    log.Fatal(err)
//	}
//
// Or use WithClient for automatic lifecycle management:
//
//	err := i3ipc.WithClient(ctx, func(c i3ipc.Client) error {
//	    _, err := c.GetWorkspaces(ctx)
//	    return err
//	})
//
// # Subscriptions
//
// Subscribe opens a dedicated connection and delivers events to the handler
// on a background goroutine, one at a time and in wire order:
//
//	sub, err := client.Subscribe(ctx, []i3ipc.EventType{i3ipc.EventWindow},
//	    func(ctx context.Context, event i3ipc.EventType, payload any) error {
//	        fmt.Println(event, payload)
//	        return nil
//	    })
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sub.Close()
//
//	<-sub.Done()
//	if err := sub.Err(); err != nil {
//	    log.Printf("subscription ended: %v", err)
//	}
//
// # Socket Discovery
//
// The socket path is taken from WithSocketPath, then the I3SOCK and
// SWAYSOCK environment variables, then the output of
// "i3 --get-socketpath" (see WithHelperPath).
//
// # Error Handling
//
// Failures are reported as typed errors:
//
//	_, err := client.RunCommand(ctx, "focus left")
//	if cmdErr, ok := errors.AsType[*i3ipc.CommandError](err); ok {
//	    log.Printf("command %d rejected: %s", cmdErr.Index, cmdErr.Message)
//	}
//	if connErr, ok := errors.AsType[*i3ipc.ConnectionError](err); ok {
//	    log.Fatalf("cannot reach %s: %v", connErr.Path, connErr.Err)
//	}
package i3ipc
