// Package client implements the request client for the i3 IPC protocol.
//
// Every one-shot request opens its own connection through the socket
// package, so a Client can be shared freely between goroutines. Event
// subscriptions are delegated to the subscription package; the client keeps
// track of the subscriptions it opened so that Close can tear them down.
//
// The client never discovers the socket path itself. The path is resolved
// once by the caller and passed to New.
package client
