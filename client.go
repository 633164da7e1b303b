package i3ipc

import (
	"context"

	"github.com/wagiedev/i3ipc-go/internal/client"
	"github.com/wagiedev/i3ipc-go/internal/discovery"
)

// Client issues requests to the window manager and opens event
// subscriptions.
//
// The socket path is resolved once when the client is created. Every
// request opens, uses and closes its own connection, so a Client is safe
// for concurrent use.
//
// Lifecycle: Clients are single-use. After Close(), create a new client with
// NewClient().
//
// Example usage:
//
//	client, err := NewClient(ctx, WithLogger(slog.Default()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	tree, err := client.GetTree(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
type Client interface {
	// SocketPath returns the resolved socket path.
	SocketPath() string

	// Request sends payload encoded as JSON, or an empty payload when it is
	// nil, and returns the decoded reply.
	// Returns a ProtocolError if the reply is not JSON.
	Request(ctx context.Context, msgType MessageType, payload any) (any, error)

	// RequestRaw sends payload verbatim and returns the decoded reply.
	RequestRaw(ctx context.Context, msgType MessageType, payload string) (any, error)

	// RunCommand runs i3 commands. The decoded reply is returned even when a
	// command failed; the error is then a CommandError.
	RunCommand(ctx context.Context, command string) (any, error)

	// GetWorkspaces returns the list of workspaces.
	GetWorkspaces(ctx context.Context) (any, error)

	// GetOutputs returns the list of outputs.
	GetOutputs(ctx context.Context) (any, error)

	// GetTree returns the layout tree.
	GetTree(ctx context.Context) (any, error)

	// GetMarks returns the names of all marks.
	GetMarks(ctx context.Context) (any, error)

	// GetBarConfig returns the bar ids when barID is empty, and the
	// configuration of that bar otherwise.
	GetBarConfig(ctx context.Context, barID string) (any, error)

	// GetVersion returns the version of the window manager.
	GetVersion(ctx context.Context) (any, error)

	// GetBindingModes returns the names of all binding modes.
	GetBindingModes(ctx context.Context) (any, error)

	// GetConfig returns the last loaded config file.
	GetConfig(ctx context.Context) (any, error)

	// SendTick broadcasts a tick event carrying payload.
	SendTick(ctx context.Context, payload string) (any, error)

	// Sync sends an i3 sync client message with the value rnd to window.
	Sync(ctx context.Context, window, rnd uint32) (any, error)

	// GetBindingState returns the currently active binding mode.
	GetBindingState(ctx context.Context) (any, error)

	// Subscribe opens a subscription to events. It returns once the
	// handshake reply has been read; events are then delivered to handler
	// on a background goroutine.
	// Returns a SubscriptionError if the window manager refuses.
	Subscribe(ctx context.Context, events []EventType, handler Handler) (*Subscription, error)

	// Close closes every subscription opened through the client.
	// After Close(), the client cannot be reused. Safe to call multiple times.
	// Close waits for running handlers, so it must not be called from one.
	Close() error
}

// NewClient resolves the socket path and creates a client.
//
// Returns a SocketNotFoundError if no socket path can be found. No
// connection is made until the first request.
func NewClient(ctx context.Context, opts ...Option) (Client, error) {
	options := applyOptions(opts)

	path, err := discovery.NewDiscoverer(&discovery.Config{
		SocketPath: options.SocketPath,
		Helper:     options.Helper,
		Logger:     options.Logger,
	}).Discover(ctx)
	if err != nil {
		return nil, err
	}

	options.SocketPath = path

	return &clientWrapper{impl: client.New(path, options)}, nil
}
