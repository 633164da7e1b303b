// Package config provides configuration types for the i3 IPC client.
package config

import (
	"log/slog"
	"time"
)

// DefaultDialTimeout bounds how long connecting to the socket may take.
const DefaultDialTimeout = 2 * time.Second

// DefaultHelper is the binary asked for the socket path when neither an
// explicit path nor an environment variable names one.
const DefaultHelper = "i3"

// Options configures the behavior of the i3 IPC client.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// SocketPath is the resolved path of the IPC socket.
	// If empty, the path is discovered from the environment or the helper binary.
	SocketPath string

	// Helper is the window manager binary invoked with --get-socketpath
	// during discovery. Defaults to "i3"; set to "sway" for sway.
	Helper string

	// DialTimeout bounds each connect. Zero means DefaultDialTimeout.
	DialTimeout time.Duration

	// MaxPayloadSize rejects frames announcing larger payloads.
	// Zero means no limit.
	MaxPayloadSize uint32

	// VerifyPeer checks that the process behind the socket runs as the
	// current user before any frame is sent (Linux only).
	VerifyPeer bool

	// Dialer allows injecting a custom connection factory.
	// If nil, a net.Dialer on the "unix" network is used.
	Dialer Dialer
}

// DialTimeoutOrDefault returns the configured dial timeout or the default.
func (o *Options) DialTimeoutOrDefault() time.Duration {
	if o == nil || o.DialTimeout <= 0 {
		return DefaultDialTimeout
	}

	return o.DialTimeout
}

// HelperOrDefault returns the configured helper binary or the default.
func (o *Options) HelperOrDefault() string {
	if o == nil || o.Helper == "" {
		return DefaultHelper
	}

	return o.Helper
}
