//go:build integration

package integration

import (
	"context"
	"errors"
	"testing"

	i3ipc "github.com/wagiedev/i3ipc-go"
)

// skipIfNoWindowManager skips the test if the error indicates no socket
// could be found.
func skipIfNoWindowManager(t *testing.T, err error) {
	t.Helper()

	if _, ok := errors.AsType[*i3ipc.SocketNotFoundError](err); ok {
		t.Skip("no i3 or sway instance found")
	}
}

// newClient creates a client against the running window manager and
// closes it when the test ends.
func newClient(ctx context.Context, t *testing.T) i3ipc.Client {
	t.Helper()

	client, err := i3ipc.NewClient(ctx)
	if err != nil {
		skipIfNoWindowManager(t, err)
		t.Fatalf("NewClient failed: %v", err)
	}

	t.Cleanup(func() { _ = client.Close() })

	return client
}
