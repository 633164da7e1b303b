// Package ipctest provides an in-process fake window manager that speaks the
// i3 IPC wire protocol on a temporary unix socket.
package ipctest

import (
	stderrors "errors"
	"net"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/wagiedev/i3ipc-go/internal/protocol"
)

// HandlerFunc builds the reply payload for one request payload.
type HandlerFunc func(payload []byte) string

// Server is a fake IPC peer. Requests are answered by registered handlers;
// subscribe requests are acknowledged and the connection then receives the
// events passed to Emit.
type Server struct {
	tb       testing.TB
	dir      string
	path     string
	listener net.Listener

	mu        sync.Mutex
	handlers  map[protocol.MessageType]HandlerFunc
	raw       map[protocol.MessageType][]byte
	received  []protocol.Frame
	conns     map[*peerConn]struct{}
	chunkSize int
	accepted  int

	wg        sync.WaitGroup
	closeOnce sync.Once
}

type peerConn struct {
	conn   net.Conn
	wmu    sync.Mutex
	events []protocol.EventType
}

// NewServer starts a fake peer and registers its shutdown with tb.Cleanup.
func NewServer(tb testing.TB) *Server {
	tb.Helper()

	// Kept short: unix socket paths are limited to ~108 bytes.
	dir, err := os.MkdirTemp("", "i3ipc")
	if err != nil {
		tb.Fatalf("create socket dir: %v", err)
	}

	path := filepath.Join(dir, "ipc.sock")

	listener, err := net.Listen("unix", path)
	if err != nil {
		_ = os.RemoveAll(dir)
		tb.Fatalf("listen on %s: %v", path, err)
	}

	s := &Server{
		tb:       tb,
		dir:      dir,
		path:     path,
		listener: listener,
		handlers: make(map[protocol.MessageType]HandlerFunc, 16),
		raw:      make(map[protocol.MessageType][]byte, 4),
		conns:    make(map[*peerConn]struct{}, 4),
	}

	s.wg.Add(1)

	go s.acceptLoop()

	tb.Cleanup(s.Close)

	return s
}

// Path returns the socket path.
func (s *Server) Path() string {
	return s.path
}

// Handle registers the reply builder for a message type.
func (s *Server) Handle(msgType protocol.MessageType, fn HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.handlers[msgType] = fn
}

// Reply registers a fixed reply payload for a message type.
func (s *Server) Reply(msgType protocol.MessageType, payload string) {
	s.Handle(msgType, func([]byte) string { return payload })
}

// HandleRaw makes the server answer msgType by writing raw bytes verbatim and
// then closing the connection.
func (s *Server) HandleRaw(msgType protocol.MessageType, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.raw[msgType] = raw
}

// SetChunkSize splits every outgoing frame into writes of at most n bytes.
func (s *Server) SetChunkSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chunkSize = n
}

// Received returns a copy of every request frame read so far.
func (s *Server) Received() []protocol.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.received)
}

// Accepted returns the number of connections accepted so far.
func (s *Server) Accepted() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.accepted
}

// Subscribers returns the number of open connections subscribed to event.
func (s *Server) Subscribers(event protocol.EventType) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0

	for pc := range s.conns {
		if slices.Contains(pc.events, event) {
			n++
		}
	}

	return n
}

// WaitSubscribers blocks until n connections are subscribed to event.
func (s *Server) WaitSubscribers(event protocol.EventType, n int) {
	s.tb.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for s.Subscribers(event) != n {
		if time.Now().After(deadline) {
			s.tb.Fatalf("timed out waiting for %d %s subscribers", n, event)
		}

		time.Sleep(5 * time.Millisecond)
	}
}

// Emit pushes an event frame to every connection subscribed to event and
// returns how many connections received it.
func (s *Server) Emit(event protocol.EventType, payload string) int {
	s.tb.Helper()

	code, ok := event.Code()
	if !ok {
		s.tb.Fatalf("unknown event type %q", event)
	}

	return s.broadcast(func(pc *peerConn) bool {
		return slices.Contains(pc.events, event)
	}, code|protocol.EventFlag, payload)
}

// EmitFrame pushes a frame with an arbitrary wire type to every subscribed
// connection.
func (s *Server) EmitFrame(wireType uint32, payload string) int {
	return s.broadcast(func(pc *peerConn) bool {
		return len(pc.events) > 0
	}, wireType, payload)
}

// DropSubscribers closes every subscribed connection.
func (s *Server) DropSubscribers() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for pc := range s.conns {
		if len(pc.events) > 0 {
			_ = pc.conn.Close()
		}
	}
}

// Close stops accepting, closes every connection, and removes the socket.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		_ = s.listener.Close()

		s.mu.Lock()
		for pc := range s.conns {
			_ = pc.conn.Close()
		}
		s.mu.Unlock()

		s.wg.Wait()
		_ = os.RemoveAll(s.dir)
	})
}

func (s *Server) broadcast(match func(*peerConn) bool, wireType uint32, payload string) int {
	s.mu.Lock()

	targets := make([]*peerConn, 0, len(s.conns))
	for pc := range s.conns {
		if match(pc) {
			targets = append(targets, pc)
		}
	}

	s.mu.Unlock()

	sent := 0

	for _, pc := range targets {
		if s.write(pc, wireType, payload) == nil {
			sent++
		}
	}

	return sent
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if stderrors.Is(err, net.ErrClosed) {
				return
			}

			continue
		}

		pc := &peerConn{conn: conn}

		s.mu.Lock()
		s.conns[pc] = struct{}{}
		s.accepted++
		s.mu.Unlock()

		s.wg.Add(1)

		go s.serve(pc)
	}
}

func (s *Server) serve(pc *peerConn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, pc)
		s.mu.Unlock()

		_ = pc.conn.Close()
	}()

	for {
		frame, err := protocol.ReadFrame(pc.conn, 0)
		if err != nil {
			return
		}

		msgType := protocol.MessageType(frame.Type)

		s.mu.Lock()
		s.received = append(s.received, frame)
		handler := s.handlers[msgType]
		raw, hasRaw := s.raw[msgType]
		s.mu.Unlock()

		if hasRaw {
			pc.wmu.Lock()
			_, _ = pc.conn.Write(raw)
			pc.wmu.Unlock()

			return
		}

		var reply string

		switch {
		case handler != nil:
			reply = handler(frame.Payload)
		case msgType == protocol.Subscribe:
			reply = `{"success":true}`
		default:
			reply = "{}"
		}

		if msgType == protocol.Subscribe && protocol.CheckSubscribeReply([]byte(reply)) == nil {
			s.subscribe(pc, frame.Payload)
		}

		if err := s.write(pc, frame.Type, reply); err != nil {
			return
		}
	}
}

// subscribe records the events requested on pc before the reply is written,
// so a client that has seen the reply can rely on receiving events.
func (s *Server) subscribe(pc *peerConn, payload []byte) {
	v, err := protocol.DecodePayload(payload)
	if err != nil {
		return
	}

	names, _ := v.([]any)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range names {
		if str, ok := name.(string); ok {
			pc.events = append(pc.events, protocol.EventType(str))
		}
	}
}

func (s *Server) write(pc *peerConn, wireType uint32, payload string) error {
	buf, err := protocol.Encode(wireType, payload)
	if err != nil {
		return err
	}

	s.mu.Lock()
	chunk := s.chunkSize
	s.mu.Unlock()

	if chunk <= 0 {
		chunk = len(buf)
	}

	pc.wmu.Lock()
	defer pc.wmu.Unlock()

	for len(buf) > 0 {
		n := min(chunk, len(buf))

		if _, err := pc.conn.Write(buf[:n]); err != nil {
			return err
		}

		buf = buf[n:]
	}

	return nil
}
