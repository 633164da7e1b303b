package i3ipc

import "github.com/wagiedev/i3ipc-go/internal/errors"

// Re-export error types from internal package

// IPCError is the base interface for all i3 IPC errors.
type IPCError = errors.IPCError

// SocketNotFoundError indicates the IPC socket path could not be resolved.
type SocketNotFoundError = errors.SocketNotFoundError

// ConnectionError indicates a socket connect, write, or read failure.
type ConnectionError = errors.ConnectionError

// FrameError indicates a truncated or malformed frame.
type FrameError = errors.FrameError

// ProtocolError indicates a payload that is not valid JSON.
type ProtocolError = errors.ProtocolError

// SubscriptionError indicates the subscribe handshake was refused or malformed.
type SubscriptionError = errors.SubscriptionError

// CommandError indicates a command in a run_command request failed.
type CommandError = errors.CommandError

// Re-export sentinel errors from internal package.
var (
	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.ErrClientClosed

	// ErrSubscriptionClosed indicates the subscription was closed locally.
	ErrSubscriptionClosed = errors.ErrSubscriptionClosed

	// ErrPeerMismatch indicates the process behind the socket runs as another user.
	ErrPeerMismatch = errors.ErrPeerMismatch

	// ErrUnknownMessageType indicates a message type name or code is not recognized.
	ErrUnknownMessageType = errors.ErrUnknownMessageType

	// ErrUnknownEventType indicates an event name or code is not recognized.
	ErrUnknownEventType = errors.ErrUnknownEventType
)
