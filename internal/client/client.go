package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/i3ipc-go/internal/config"
	"github.com/wagiedev/i3ipc-go/internal/errors"
	"github.com/wagiedev/i3ipc-go/internal/protocol"
	"github.com/wagiedev/i3ipc-go/internal/socket"
	"github.com/wagiedev/i3ipc-go/internal/subscription"
)

// Client issues one-shot requests and owns the subscriptions it opens.
type Client struct {
	log       *slog.Logger
	baseLog   *slog.Logger
	transport *socket.Transport

	// Lifecycle management
	mu        sync.Mutex
	subs      map[string]*subscription.Subscription
	closed    bool
	closeOnce sync.Once
}

// New creates a client for the socket at path.
func New(path string, options *config.Options) *Client {
	if options == nil {
		options = &config.Options{}
	}

	log := options.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		log:       log.With("component", "client"),
		baseLog:   log,
		transport: socket.NewTransport(log, path, options),
		subs:      make(map[string]*subscription.Subscription, 4),
	}
}

// SocketPath returns the socket path the client was created with.
func (c *Client) SocketPath() string {
	return c.transport.Path()
}

func (c *Client) checkOpen() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errors.ErrClientClosed
	}

	return nil
}

// Request sends a request whose payload is payload encoded as JSON, or the
// empty string when payload is nil, and returns the decoded reply.
//
// Returns a ProtocolError if the reply is not JSON. Connection and frame
// errors from the transport are returned unmodified.
func (c *Client) Request(ctx context.Context, msgType protocol.MessageType, payload any) (any, error) {
	var text string

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", msgType, err)
		}

		text = string(data)
	}

	return c.RequestRaw(ctx, msgType, text)
}

// RequestRaw sends payload verbatim and returns the decoded reply.
func (c *Client) RequestRaw(ctx context.Context, msgType protocol.MessageType, payload string) (any, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	if !msgType.Valid() {
		return nil, fmt.Errorf("%w: %d", errors.ErrUnknownMessageType, uint32(msgType))
	}

	c.log.Debug("Sending request", "type", msgType.String(), "length", len(payload))

	reply, err := c.transport.Call(ctx, msgType, payload)
	if err != nil {
		return nil, err
	}

	return protocol.DecodePayload(reply)
}

// RunCommand runs one or more i3 commands separated by ';' or ','.
//
// The decoded reply is returned even when a command failed; the error is
// then a CommandError for the first failed command.
func (c *Client) RunCommand(ctx context.Context, command string) (any, error) {
	reply, err := c.RequestRaw(ctx, protocol.RunCommand, command)
	if err != nil {
		return nil, err
	}

	return reply, protocol.CheckCommandReply(reply)
}

// GetWorkspaces returns the list of workspaces.
func (c *Client) GetWorkspaces(ctx context.Context) (any, error) {
	return c.Request(ctx, protocol.GetWorkspaces, nil)
}

// GetOutputs returns the list of outputs.
func (c *Client) GetOutputs(ctx context.Context) (any, error) {
	return c.Request(ctx, protocol.GetOutputs, nil)
}

// GetTree returns the layout tree.
func (c *Client) GetTree(ctx context.Context) (any, error) {
	return c.Request(ctx, protocol.GetTree, nil)
}

// GetMarks returns the names of all marks.
func (c *Client) GetMarks(ctx context.Context) (any, error) {
	return c.Request(ctx, protocol.GetMarks, nil)
}

// GetBarConfig returns the list of bar ids when barID is empty, and the
// configuration of that bar otherwise.
func (c *Client) GetBarConfig(ctx context.Context, barID string) (any, error) {
	return c.RequestRaw(ctx, protocol.GetBarConfig, barID)
}

// GetVersion returns the version of the window manager.
func (c *Client) GetVersion(ctx context.Context) (any, error) {
	return c.Request(ctx, protocol.GetVersion, nil)
}

// GetBindingModes returns the names of all binding modes.
func (c *Client) GetBindingModes(ctx context.Context) (any, error) {
	return c.Request(ctx, protocol.GetBindingModes, nil)
}

// GetConfig returns the last loaded config file.
func (c *Client) GetConfig(ctx context.Context) (any, error) {
	return c.Request(ctx, protocol.GetConfig, nil)
}

// SendTick broadcasts a tick event carrying payload.
func (c *Client) SendTick(ctx context.Context, payload string) (any, error) {
	return c.RequestRaw(ctx, protocol.SendTick, payload)
}

// Sync sends an i3 sync client message with the random value rnd to window.
func (c *Client) Sync(ctx context.Context, window, rnd uint32) (any, error) {
	return c.Request(ctx, protocol.Sync, map[string]uint32{
		"window": window,
		"rnd":    rnd,
	})
}

// GetBindingState returns the currently active binding mode.
func (c *Client) GetBindingState(ctx context.Context) (any, error) {
	return c.Request(ctx, protocol.GetBindingState, nil)
}

// Subscribe opens a subscription owned by the client. It is closed by the
// client's Close unless it ends on its own first.
func (c *Client) Subscribe(
	ctx context.Context,
	events []protocol.EventType,
	handler subscription.Handler,
) (*subscription.Subscription, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}

	sub, err := subscription.Subscribe(ctx, c.baseLog, c.transport, events, handler)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()

		_ = sub.Close()

		return nil, errors.ErrClientClosed
	}

	c.subs[sub.ID()] = sub
	c.mu.Unlock()

	go func() {
		<-sub.Done()

		c.mu.Lock()
		delete(c.subs, sub.ID())
		c.mu.Unlock()
	}()

	return sub, nil
}

// activeSubscriptions returns the number of subscriptions still tracked.
func (c *Client) activeSubscriptions() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.subs)
}

// Close closes every live subscription and marks the client closed.
//
// After Close(), every method returns ErrClientClosed.
// This method is safe to call multiple times. It waits for every subscription
// handler to return, so it must not be called from inside a handler.
func (c *Client) Close() error {
	var closeErr error

	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true

		subs := make([]*subscription.Subscription, 0, len(c.subs))
		for _, sub := range c.subs {
			subs = append(subs, sub)
		}
		c.mu.Unlock()

		c.log.Info("Closing client", "subscriptions", len(subs))

		var eg errgroup.Group

		for _, sub := range subs {
			eg.Go(sub.Close)
		}

		closeErr = eg.Wait()

		c.log.Info("Client closed")
	})

	return closeErr
}
