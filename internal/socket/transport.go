package socket

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/wagiedev/i3ipc-go/internal/config"
	"github.com/wagiedev/i3ipc-go/internal/errors"
	"github.com/wagiedev/i3ipc-go/internal/protocol"
)

// Transport dials the IPC socket. It holds no per-connection state and is
// safe for concurrent use.
type Transport struct {
	log        *slog.Logger
	path       string
	dialer     config.Dialer
	options    *config.Options
	maxPayload uint32
}

// NewTransport creates a transport for the socket at path.
//
// The logger is used for operation tracking and debugging. The path is
// resolved by the caller and never changes afterwards.
func NewTransport(log *slog.Logger, path string, options *config.Options) *Transport {
	if options == nil {
		options = &config.Options{}
	}

	dialer := options.Dialer
	if dialer == nil {
		dialer = &net.Dialer{}
	}

	return &Transport{
		log:        log.With("component", "socket"),
		path:       path,
		dialer:     dialer,
		options:    options,
		maxPayload: options.MaxPayloadSize,
	}
}

// Path returns the socket path this transport dials.
func (t *Transport) Path() string {
	return t.path
}

// Open connects to the socket and returns a connection owned by the caller.
//
// Returns a ConnectionError if the connect fails, times out, or the peer
// check rejects the process behind the socket.
func (t *Transport) Open(ctx context.Context) (*Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, t.options.DialTimeoutOrDefault())
	defer cancel()

	t.log.Debug("Dialing IPC socket", "path", t.path)

	nc, err := t.dialer.DialContext(dialCtx, "unix", t.path)
	if err != nil {
		t.log.Debug("Failed to dial IPC socket", "path", t.path, "error", err)

		return nil, &errors.ConnectionError{Op: "dial", Path: t.path, Err: err}
	}

	if t.options.VerifyPeer {
		if err := t.verifyPeer(nc); err != nil {
			_ = nc.Close()

			t.log.Warn("Rejected IPC socket peer", "path", t.path, "error", err)

			return nil, &errors.ConnectionError{Op: "verify peer", Path: t.path, Err: err}
		}
	}

	return &Conn{
		log:        t.log,
		conn:       nc,
		path:       t.path,
		maxPayload: t.maxPayload,
	}, nil
}

// Call performs exactly one request/response exchange on a fresh connection
// and returns the raw reply payload. The connection is closed on every path.
//
// Cancelling ctx closes the connection, which unblocks any pending read or
// write; the returned ConnectionError then wraps the context error.
func (t *Transport) Call(ctx context.Context, msgType protocol.MessageType, payload string) ([]byte, error) {
	conn, err := t.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	if err := conn.Send(msgType, payload); err != nil {
		return nil, t.contextError(ctx, err)
	}

	frame, err := conn.Receive()
	if err != nil {
		return nil, t.contextError(ctx, err)
	}

	if frame.Type != uint32(msgType) {
		t.log.Debug("Reply type differs from request type",
			"request_type", msgType.String(),
			"reply_type", frame.Type,
		)
	}

	t.log.Debug("IPC call completed", "type", msgType.String(), "length", frame.Length)

	return frame.Payload, nil
}

// contextError prefers the context error when cancellation caused err.
func (t *Transport) contextError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &errors.ConnectionError{Op: "call", Path: t.path, Err: ctxErr}
	}

	return err
}

func (t *Transport) verifyPeer(nc net.Conn) error {
	uid, supported, err := peerUID(nc)
	if err != nil {
		return fmt.Errorf("read peer credentials: %w", err)
	}

	if !supported {
		t.log.Debug("Peer credential check unsupported for connection", "path", t.path)

		return nil
	}

	if self := os.Getuid(); uid != uint32(self) {
		return fmt.Errorf("%w: peer uid %d, own uid %d", errors.ErrPeerMismatch, uid, self)
	}

	return nil
}

// Conn is one open connection to the IPC socket. Send and Receive must not
// be called concurrently with themselves; Close may be called from any
// goroutine.
type Conn struct {
	log        *slog.Logger
	conn       net.Conn
	path       string
	maxPayload uint32

	closeOnce sync.Once
	closeErr  error
}

// Path returns the socket path of the connection.
func (c *Conn) Path() string {
	return c.path
}

// Send writes one complete frame.
func (c *Conn) Send(msgType protocol.MessageType, payload string) error {
	c.log.Debug("Sending frame", "type", msgType.String(), "length", len(payload))

	return c.annotate(protocol.WriteFrame(c.conn, uint32(msgType), payload))
}

// Receive blocks until one complete frame has been read.
func (c *Conn) Receive() (protocol.Frame, error) {
	frame, err := protocol.ReadFrame(c.conn, c.maxPayload)
	if err != nil {
		return protocol.Frame{}, c.annotate(err)
	}

	c.log.Debug("Received frame", "type", frame.Type, "event", frame.Event, "length", frame.Length)

	return frame, nil
}

// Close closes the connection. It is safe to call multiple times.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})

	return c.closeErr
}

// annotate fills in the socket path on connection errors raised below this layer.
func (c *Conn) annotate(err error) error {
	if connErr, ok := stderrors.AsType[*errors.ConnectionError](err); ok && connErr.Path == "" {
		connErr.Path = c.path
	}

	return err
}
