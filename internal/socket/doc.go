// Package socket provides the unix socket transport for the i3 IPC protocol.
//
// Transport.Call performs one request/response exchange on a connection it
// opens and closes itself, so concurrent calls never share socket state.
// Transport.Open returns a persistent Conn for the subscription engine, which
// owns it for the lifetime of the subscription.
package socket
