package discovery

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/i3ipc-go/internal/errors"
)

// fakeHelper writes an executable script that prints output.
func fakeHelper(t *testing.T, script string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fake-i3")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))

	return path
}

func clearEnv(t *testing.T) {
	t.Helper()

	for _, name := range envVars {
		t.Setenv(name, "")
	}
}

func TestDiscoverer_ExplicitPath(t *testing.T) {
	t.Setenv("I3SOCK", "/should/not/be/used")

	discoverer := NewDiscoverer(&Config{
		SocketPath: "/run/user/1000/i3/ipc-socket.42",
		Logger:     slog.Default(),
	})

	path, err := discoverer.Discover(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/run/user/1000/i3/ipc-socket.42", path)
}

func TestDiscoverer_Environment(t *testing.T) {
	clearEnv(t)

	sock := filepath.Join(t.TempDir(), "sway.sock")
	require.NoError(t, os.WriteFile(sock, nil, 0o600))

	t.Setenv("I3SOCK", filepath.Join(t.TempDir(), "stale.sock"))
	t.Setenv("SWAYSOCK", sock)

	path, err := NewDiscoverer(&Config{Helper: "/nonexistent/helper"}).Discover(context.Background())
	require.NoError(t, err)
	require.Equal(t, sock, path)
}

func TestDiscoverer_Helper(t *testing.T) {
	clearEnv(t)

	helper := fakeHelper(t, `[ "$1" = "--get-socketpath" ] && echo "  /tmp/i3-ipc.sock  "`)

	path, err := NewDiscoverer(&Config{Helper: helper}).Discover(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/tmp/i3-ipc.sock", path)
}

func TestDiscoverer_HelperFails(t *testing.T) {
	clearEnv(t)

	helper := fakeHelper(t, "exit 1")

	_, err := NewDiscoverer(&Config{Helper: helper}).Discover(context.Background())

	notFound, ok := stderrors.AsType[*errors.SocketNotFoundError](err)
	require.True(t, ok, "got %T", err)
	require.Equal(t, []string{"$I3SOCK", "$SWAYSOCK", helper + " --get-socketpath"}, notFound.Searched)
	require.Error(t, notFound.Err)
}

func TestDiscoverer_HelperEmptyOutput(t *testing.T) {
	clearEnv(t)

	helper := fakeHelper(t, "echo")

	_, err := NewDiscoverer(&Config{Helper: helper}).Discover(context.Background())

	_, ok := stderrors.AsType[*errors.SocketNotFoundError](err)
	require.True(t, ok)
}

func TestDiscoverer_HelperMissing(t *testing.T) {
	clearEnv(t)

	_, err := NewDiscoverer(nil).Discover(context.Background())
	if err == nil {
		t.Skip("an i3 binary is installed on this machine")
	}

	_, ok := stderrors.AsType[*errors.SocketNotFoundError](err)
	require.True(t, ok)
}
