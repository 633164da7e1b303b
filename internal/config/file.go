package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// File mirrors the on-disk TOML configuration.
//
//	socket_path = "/run/user/1000/i3/ipc-socket.1234"
//	helper = "sway"
//	dial_timeout = "5s"
//	max_payload_size = 16777216
//	verify_peer = true
//	log_level = "debug"
type File struct {
	SocketPath     string `toml:"socket_path"`
	Helper         string `toml:"helper"`
	DialTimeout    string `toml:"dial_timeout"`
	MaxPayloadSize uint32 `toml:"max_payload_size"`
	VerifyPeer     bool   `toml:"verify_peer"`
	LogLevel       string `toml:"log_level"`
}

// DefaultFilePath returns the default configuration file location.
func DefaultFilePath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "i3ipc", "config.toml"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, ".config", "i3ipc", "config.toml"), nil
}

// LoadFile reads a TOML configuration file. When path is empty the default
// location is used and a missing file yields an empty configuration; an
// explicit path must exist.
func LoadFile(path string) (*File, error) {
	explicit := path != ""

	if !explicit {
		var err error

		path, err = DefaultFilePath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &File{}, nil
		}

		return nil, fmt.Errorf("read config: %w", err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &f, nil
}

// Validate checks values that cannot be expressed in the TOML types.
func (f *File) Validate() error {
	if f.DialTimeout != "" {
		d, err := time.ParseDuration(f.DialTimeout)
		if err != nil {
			return fmt.Errorf("dial_timeout: %w", err)
		}

		if d <= 0 {
			return fmt.Errorf("dial_timeout must be positive, got %s", f.DialTimeout)
		}
	}

	if _, err := ParseLogLevel(f.LogLevel); err != nil {
		return err
	}

	return nil
}

// Apply copies the file settings onto opts. Fields already set on opts win.
func (f *File) Apply(opts *Options) {
	if opts.SocketPath == "" {
		opts.SocketPath = f.SocketPath
	}

	if opts.Helper == "" {
		opts.Helper = f.Helper
	}

	if opts.DialTimeout == 0 && f.DialTimeout != "" {
		// Validate has already accepted the value.
		opts.DialTimeout, _ = time.ParseDuration(f.DialTimeout)
	}

	if opts.MaxPayloadSize == 0 {
		opts.MaxPayloadSize = f.MaxPayloadSize
	}

	opts.VerifyPeer = opts.VerifyPeer || f.VerifyPeer
}

// ParseLogLevel maps a level name to a slog level. Empty means warn.
func ParseLogLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log_level: unknown level %q", name)
	}
}
