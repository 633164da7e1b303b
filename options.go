package i3ipc

import (
	"log/slog"
	"time"

	"github.com/wagiedev/i3ipc-go/internal/config"
)

// Options holds the resolved client configuration.
type Options = config.Options

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to an Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithSocketPath sets the socket path explicitly and skips discovery.
func WithSocketPath(path string) Option {
	return func(o *Options) {
		o.SocketPath = path
	}
}

// WithHelperPath sets the binary run with --get-socketpath when neither an
// explicit path nor I3SOCK/SWAYSOCK names the socket. Defaults to "i3".
func WithHelperPath(path string) Option {
	return func(o *Options) {
		o.Helper = path
	}
}

// WithDialTimeout bounds how long connecting to the socket may take.
// Defaults to two seconds.
func WithDialTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.DialTimeout = timeout
	}
}

// WithMaxPayloadSize rejects reply and event frames announcing a payload
// larger than size bytes with a FrameError. Zero means no limit.
func WithMaxPayloadSize(size uint32) Option {
	return func(o *Options) {
		o.MaxPayloadSize = size
	}
}

// WithPeerCheck verifies that the process behind the socket runs as the
// current user before anything is sent. Only enforced on Linux.
func WithPeerCheck(enabled bool) Option {
	return func(o *Options) {
		o.VerifyPeer = enabled
	}
}

// WithDialer injects a custom connection factory.
func WithDialer(dialer Dialer) Option {
	return func(o *Options) {
		o.Dialer = dialer
	}
}

// WithOptions copies every field of base. Options given after it override
// individual fields.
func WithOptions(base *Options) Option {
	return func(o *Options) {
		if base != nil {
			*o = *base
		}
	}
}
