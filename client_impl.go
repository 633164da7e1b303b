package i3ipc

import (
	"context"

	"github.com/wagiedev/i3ipc-go/internal/client"
)

// clientWrapper wraps the internal client to adapt it to the public interface.
type clientWrapper struct {
	impl *client.Client
}

// Compile-time check that *clientWrapper implements the Client interface.
var _ Client = (*clientWrapper)(nil)

func (c *clientWrapper) SocketPath() string {
	return c.impl.SocketPath()
}

func (c *clientWrapper) Request(ctx context.Context, msgType MessageType, payload any) (any, error) {
	return c.impl.Request(ctx, msgType, payload)
}

func (c *clientWrapper) RequestRaw(ctx context.Context, msgType MessageType, payload string) (any, error) {
	return c.impl.RequestRaw(ctx, msgType, payload)
}

func (c *clientWrapper) RunCommand(ctx context.Context, command string) (any, error) {
	return c.impl.RunCommand(ctx, command)
}

func (c *clientWrapper) GetWorkspaces(ctx context.Context) (any, error) {
	return c.impl.GetWorkspaces(ctx)
}

func (c *clientWrapper) GetOutputs(ctx context.Context) (any, error) {
	return c.impl.GetOutputs(ctx)
}

func (c *clientWrapper) GetTree(ctx context.Context) (any, error) {
	return c.impl.GetTree(ctx)
}

func (c *clientWrapper) GetMarks(ctx context.Context) (any, error) {
	return c.impl.GetMarks(ctx)
}

func (c *clientWrapper) GetBarConfig(ctx context.Context, barID string) (any, error) {
	return c.impl.GetBarConfig(ctx, barID)
}

func (c *clientWrapper) GetVersion(ctx context.Context) (any, error) {
	return c.impl.GetVersion(ctx)
}

func (c *clientWrapper) GetBindingModes(ctx context.Context) (any, error) {
	return c.impl.GetBindingModes(ctx)
}

func (c *clientWrapper) GetConfig(ctx context.Context) (any, error) {
	return c.impl.GetConfig(ctx)
}

func (c *clientWrapper) SendTick(ctx context.Context, payload string) (any, error) {
	return c.impl.SendTick(ctx, payload)
}

func (c *clientWrapper) Sync(ctx context.Context, window, rnd uint32) (any, error) {
	return c.impl.Sync(ctx, window, rnd)
}

func (c *clientWrapper) GetBindingState(ctx context.Context) (any, error) {
	return c.impl.GetBindingState(ctx)
}

func (c *clientWrapper) Subscribe(ctx context.Context, events []EventType, handler Handler) (*Subscription, error) {
	return c.impl.Subscribe(ctx, events, handler)
}

func (c *clientWrapper) Close() error {
	return c.impl.Close()
}
