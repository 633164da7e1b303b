package config

import (
	"context"
	"net"
)

// Dialer opens stream connections to the IPC socket.
// Implement this to provide custom connections for testing, mocking,
// or alternative transports (e.g., a socket forwarded from another host).
//
// The default implementation is a net.Dialer on the "unix" network.
// *net.Dialer satisfies this interface.
type Dialer interface {
	// DialContext connects to address on the named network.
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}
