package errors

import (
	"errors"
	"fmt"
)

// IPCError is the base interface for all i3 IPC errors.
type IPCError interface {
	error
	IsIPCError() bool
}

// Compile-time verification that all error types implement IPCError.
var (
	_ IPCError = (*SocketNotFoundError)(nil)
	_ IPCError = (*ConnectionError)(nil)
	_ IPCError = (*FrameError)(nil)
	_ IPCError = (*ProtocolError)(nil)
	_ IPCError = (*SubscriptionError)(nil)
	_ IPCError = (*CommandError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.New("client closed: create a new one with NewClient()")

	// ErrSubscriptionClosed indicates the subscription was closed locally.
	ErrSubscriptionClosed = errors.New("subscription closed")

	// ErrPeerMismatch indicates the process behind the socket runs as another user.
	ErrPeerMismatch = errors.New("socket peer runs as a different user")

	// ErrUnknownMessageType indicates a message type name or code is not recognized.
	ErrUnknownMessageType = errors.New("unknown message type")

	// ErrUnknownEventType indicates an event name or code is not recognized.
	// The subscription listener skips such frames rather than treating them as fatal.
	ErrUnknownEventType = errors.New("unknown event type")
)

// SocketNotFoundError indicates the IPC socket path could not be resolved.
type SocketNotFoundError struct {
	Searched []string
	Err      error
}

func (e *SocketNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("i3 IPC socket not found (searched %v): %v", e.Searched, e.Err)
	}

	return fmt.Sprintf("i3 IPC socket not found (searched %v)", e.Searched)
}

func (e *SocketNotFoundError) Unwrap() error {
	return e.Err
}

// IsIPCError implements IPCError.
func (e *SocketNotFoundError) IsIPCError() bool { return true }

// ConnectionError indicates a socket connect, write, or read failure,
// including the peer closing the connection between frames.
type ConnectionError struct {
	Op   string
	Path string
	Err  error
}

func (e *ConnectionError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("i3 IPC %s %s: %v", e.Op, e.Path, e.Err)
	}

	return fmt.Sprintf("i3 IPC %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsIPCError implements IPCError.
func (e *ConnectionError) IsIPCError() bool { return true }

// FrameError indicates a malformed or truncated frame: fewer header or
// payload bytes arrived than the frame announced.
type FrameError struct {
	Reason string
	Want   int
	Got    int
	Err    error
}

func (e *FrameError) Error() string {
	msg := fmt.Sprintf("malformed frame: %s (want %d bytes, got %d)", e.Reason, e.Want, e.Got)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}

	return msg
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// IsIPCError implements IPCError.
func (e *FrameError) IsIPCError() bool { return true }

// ProtocolError indicates a payload was not valid JSON text.
// This error preserves the original raw payload that failed to parse.
type ProtocolError struct {
	Raw string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("failed to decode JSON payload: %v", e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// IsIPCError implements IPCError.
func (e *ProtocolError) IsIPCError() bool { return true }

// SubscriptionError indicates the subscribe handshake was refused or its
// reply was malformed. Reply carries the raw reply payload.
type SubscriptionError struct {
	Reply string
	Err   error
}

func (e *SubscriptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("subscription failed: %v (reply %q)", e.Err, e.Reply)
	}

	return fmt.Sprintf("subscription failed: %s", e.Reply)
}

func (e *SubscriptionError) Unwrap() error {
	return e.Err
}

// IsIPCError implements IPCError.
func (e *SubscriptionError) IsIPCError() bool { return true }

// CommandError indicates the window manager rejected one of the commands
// in a run_command request.
type CommandError struct {
	Index   int
	Message string
}

func (e *CommandError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("command %d failed", e.Index)
	}

	return fmt.Sprintf("command %d failed: %s", e.Index, e.Message)
}

// IsIPCError implements IPCError.
func (e *CommandError) IsIPCError() bool { return true }
