// Package errors defines error types for the i3 IPC client.
//
// This package provides structured error types that wrap the different ways
// a conversation with the window manager can fail: the socket could not be
// found or reached, a frame arrived truncated, a payload was not JSON, or a
// subscription was refused. All error types support error unwrapping and can
// be checked using errors.Is, errors.As, and errors.AsType.
package errors
