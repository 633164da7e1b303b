package discovery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/wagiedev/i3ipc-go/internal/config"
	"github.com/wagiedev/i3ipc-go/internal/errors"
)

// HelperTimeout bounds the --get-socketpath helper invocation.
const HelperTimeout = 2 * time.Second

// envVars are consulted in order before falling back to the helper.
var envVars = []string{"I3SOCK", "SWAYSOCK"}

// Config holds configuration for socket discovery.
type Config struct {
	// SocketPath is an explicit path that skips every other source.
	SocketPath string

	// Helper is the binary run with --get-socketpath.
	// If empty, config.DefaultHelper is used.
	Helper string

	// Logger is an optional logger for discovery operations.
	// If nil, a no-op logger is used.
	Logger *slog.Logger
}

// Discoverer locates the IPC socket.
type Discoverer interface {
	// Discover returns the socket path or a SocketNotFoundError.
	Discover(ctx context.Context) (string, error)
}

type discoverer struct {
	cfg *Config
	log *slog.Logger
}

// Compile-time verification that discoverer implements Discoverer.
var _ Discoverer = (*discoverer)(nil)

// NewDiscoverer creates a new socket discoverer with the given configuration.
func NewDiscoverer(cfg *Config) Discoverer {
	if cfg == nil {
		cfg = &Config{}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &discoverer{
		cfg: cfg,
		log: log.With("component", "discovery"),
	}
}

// Discover locates the IPC socket.
func (d *discoverer) Discover(ctx context.Context) (string, error) {
	if d.cfg.SocketPath != "" {
		d.log.Debug("Using explicit socket path", "path", d.cfg.SocketPath)

		return d.cfg.SocketPath, nil
	}

	searched := make([]string, 0, len(envVars)+1)

	for _, name := range envVars {
		searched = append(searched, "$"+name)

		path := os.Getenv(name)
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); err != nil {
			d.log.Debug("Skipping stale socket from environment", "env", name, "path", path, "error", err)

			continue
		}

		d.log.Debug("Found socket in environment", "env", name, "path", path)

		return path, nil
	}

	helper := d.cfg.Helper
	if helper == "" {
		helper = config.DefaultHelper
	}

	searched = append(searched, helper+" --get-socketpath")

	path, err := d.askHelper(ctx, helper)
	if err != nil {
		d.log.Warn("IPC socket not found", "searched", searched, "error", err)

		return "", &errors.SocketNotFoundError{Searched: searched, Err: err}
	}

	d.log.Debug("Helper reported socket path", "helper", helper, "path", path)

	return path, nil
}

// askHelper runs "<helper> --get-socketpath" and returns its trimmed output.
func (d *discoverer) askHelper(ctx context.Context, helper string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, HelperTimeout)
	defer cancel()

	//nolint:gosec // G204: the helper binary is caller configuration
	output, err := exec.CommandContext(ctx, helper, "--get-socketpath").Output()
	if err != nil {
		return "", fmt.Errorf("run %s: %w", helper, err)
	}

	path := strings.TrimSpace(string(output))
	if path == "" {
		return "", fmt.Errorf("%s printed an empty socket path", helper)
	}

	return path, nil
}
