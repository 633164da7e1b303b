package i3ipc_test

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	i3ipc "github.com/wagiedev/i3ipc-go"
	"github.com/wagiedev/i3ipc-go/internal/ipctest"
)

// countingDialer counts connections made through it.
type countingDialer struct {
	dials atomic.Int32
}

func (d *countingDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	d.dials.Add(1)

	var nd net.Dialer

	return nd.DialContext(ctx, network, address)
}

// clearSocketEnv stops discovery from picking up a real window manager.
func clearSocketEnv(t *testing.T) {
	t.Helper()

	t.Setenv("I3SOCK", "")
	t.Setenv("SWAYSOCK", "")
}

func TestNewClient_ExplicitSocketPath(t *testing.T) {
	srv := ipctest.NewServer(t)
	srv.Reply(i3ipc.GetVersion, `{"human_readable":"4.23 (2023-10-29)"}`)

	client, err := i3ipc.NewClient(context.Background(), i3ipc.WithSocketPath(srv.Path()))
	require.NoError(t, err)

	defer client.Close()

	assert.Equal(t, srv.Path(), client.SocketPath())

	version, err := client.GetVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"human_readable": "4.23 (2023-10-29)"}, version)
}

func TestNewClient_SocketFromEnvironment(t *testing.T) {
	srv := ipctest.NewServer(t)
	clearSocketEnv(t)
	t.Setenv("SWAYSOCK", srv.Path())

	client, err := i3ipc.NewClient(context.Background(), i3ipc.WithHelperPath("/nonexistent/sway"))
	require.NoError(t, err)

	defer client.Close()

	assert.Equal(t, srv.Path(), client.SocketPath())
}

func TestNewClient_SocketNotFound(t *testing.T) {
	clearSocketEnv(t)

	_, err := i3ipc.NewClient(context.Background(),
		i3ipc.WithHelperPath(filepath.Join(t.TempDir(), "missing-i3")))

	notFound, ok := errors.AsType[*i3ipc.SocketNotFoundError](err)
	require.True(t, ok, "got %T: %v", err, err)
	assert.Contains(t, notFound.Searched, "$I3SOCK")
	assert.Contains(t, notFound.Searched, "$SWAYSOCK")
}

func TestClient_RunCommandFailure(t *testing.T) {
	srv := ipctest.NewServer(t)
	srv.Reply(i3ipc.RunCommand, `[{"success":false,"error":"Unknown command"}]`)

	client, err := i3ipc.NewClient(context.Background(), i3ipc.WithSocketPath(srv.Path()))
	require.NoError(t, err)

	defer client.Close()

	reply, err := client.RunCommand(context.Background(), "frobnicate")
	require.NotNil(t, reply)

	cmdErr, ok := errors.AsType[*i3ipc.CommandError](err)
	require.True(t, ok, "got %T: %v", err, err)
	assert.Equal(t, 0, cmdErr.Index)
	assert.Equal(t, "Unknown command", cmdErr.Message)

	var ipcErr i3ipc.IPCError
	require.ErrorAs(t, err, &ipcErr)
}

func TestClient_ConnectionRefused(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.sock")

	client, err := i3ipc.NewClient(context.Background(),
		i3ipc.WithSocketPath(path),
		i3ipc.WithDialTimeout(500*time.Millisecond),
	)
	require.NoError(t, err, "NewClient must not connect")

	defer client.Close()

	_, err = client.GetTree(context.Background())

	connErr, ok := errors.AsType[*i3ipc.ConnectionError](err)
	require.True(t, ok, "got %T: %v", err, err)
	assert.Equal(t, "dial", connErr.Op)
	assert.Equal(t, path, connErr.Path)
}

func TestClient_CustomDialer(t *testing.T) {
	srv := ipctest.NewServer(t)
	dialer := &countingDialer{}

	client, err := i3ipc.NewClient(context.Background(),
		i3ipc.WithSocketPath(srv.Path()),
		i3ipc.WithDialer(dialer),
	)
	require.NoError(t, err)

	defer client.Close()

	_, err = client.GetMarks(context.Background())
	require.NoError(t, err)

	_, err = client.GetOutputs(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), dialer.dials.Load())
}

func TestClient_MaxPayloadSize(t *testing.T) {
	srv := ipctest.NewServer(t)
	srv.Reply(i3ipc.GetConfig, `{"config":"`+strings.Repeat("x", 64)+`"}`)

	client, err := i3ipc.NewClient(context.Background(),
		i3ipc.WithSocketPath(srv.Path()),
		i3ipc.WithMaxPayloadSize(16),
	)
	require.NoError(t, err)

	defer client.Close()

	_, err = client.GetConfig(context.Background())

	_, ok := errors.AsType[*i3ipc.FrameError](err)
	require.True(t, ok, "got %T: %v", err, err)
}

func TestClient_SubscribeWindowFocus(t *testing.T) {
	srv := ipctest.NewServer(t)

	client, err := i3ipc.NewClient(context.Background(), i3ipc.WithSocketPath(srv.Path()))
	require.NoError(t, err)

	defer client.Close()

	type delivery struct {
		event   i3ipc.EventType
		payload any
	}

	deliveries := make(chan delivery, 4)

	sub, err := client.Subscribe(context.Background(), []i3ipc.EventType{i3ipc.EventWindow},
		func(_ context.Context, event i3ipc.EventType, payload any) error {
			deliveries <- delivery{event: event, payload: payload}

			return nil
		})
	require.NoError(t, err)

	srv.Emit(i3ipc.EventWindow, `{"change":"focus"}`)

	select {
	case d := <-deliveries:
		assert.Equal(t, i3ipc.EventWindow, d.event)
		assert.Equal(t, map[string]any{"change": "focus"}, d.payload)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for window event")
	}

	require.NoError(t, client.Close())

	select {
	case <-sub.Done():
	default:
		t.Fatal("client Close must stop its subscriptions")
	}

	require.NoError(t, sub.Err())

	_, err = client.GetTree(context.Background())
	require.ErrorIs(t, err, i3ipc.ErrClientClosed)
}

func TestClient_SubscribeRefused(t *testing.T) {
	srv := ipctest.NewServer(t)
	srv.Reply(i3ipc.Subscribe, `{"success":false}`)

	client, err := i3ipc.NewClient(context.Background(), i3ipc.WithSocketPath(srv.Path()))
	require.NoError(t, err)

	defer client.Close()

	sub, err := client.Subscribe(context.Background(), []i3ipc.EventType{i3ipc.EventShutdown},
		func(context.Context, i3ipc.EventType, any) error { return nil })
	require.Nil(t, sub)

	subErr, ok := errors.AsType[*i3ipc.SubscriptionError](err)
	require.True(t, ok, "got %T: %v", err, err)
	assert.Equal(t, `{"success":false}`, subErr.Reply)
}
