package subscription

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/i3ipc-go/internal/errors"
	"github.com/wagiedev/i3ipc-go/internal/protocol"
	"github.com/wagiedev/i3ipc-go/internal/socket"
)

// Handler receives one event. Returning an error ends the subscription with
// that error. The context is cancelled when the subscription stops.
//
// A handler must not call Close on its own subscription, or on the client
// that owns it: both wait for the handler to return and would deadlock.
type Handler func(ctx context.Context, event protocol.EventType, payload any) error

// Opener opens a persistent connection. *socket.Transport satisfies it.
type Opener interface {
	Open(ctx context.Context) (*socket.Conn, error)
}

// Subscription is a live event stream bound to one connection and one
// listener goroutine.
type Subscription struct {
	id     string
	log    *slog.Logger
	events []protocol.EventType
	conn   *socket.Conn

	cancel context.CancelCauseFunc
	done   chan struct{}

	errMu sync.RWMutex
	err   error
}

// Subscribe opens a connection, subscribes it to events, and starts the
// listener. It returns only after the handshake reply has been read.
//
// Returns a SubscriptionError if the reply does not report success, in which
// case the connection is closed and no listener is started.
func Subscribe(
	ctx context.Context,
	log *slog.Logger,
	opener Opener,
	events []protocol.EventType,
	handler Handler,
) (*Subscription, error) {
	if handler == nil {
		return nil, stderrors.New("subscribe: nil handler")
	}

	if len(events) == 0 {
		return nil, stderrors.New("subscribe: no events requested")
	}

	for _, e := range events {
		if _, ok := e.Code(); !ok {
			return nil, fmt.Errorf("subscribe: %w: %q", errors.ErrUnknownEventType, e)
		}
	}

	payload, err := json.Marshal(events)
	if err != nil {
		return nil, fmt.Errorf("marshal events: %w", err)
	}

	id := ulid.Make().String()
	log = log.With("component", "subscription", "subscription_id", id)

	conn, err := opener.Open(ctx)
	if err != nil {
		return nil, err
	}

	if err := handshake(ctx, conn, string(payload)); err != nil {
		_ = conn.Close()

		log.Warn("Subscribe handshake failed", "events", events, "error", err)

		return nil, err
	}

	listenCtx, cancel := context.WithCancelCause(ctx)

	s := &Subscription{
		id:     id,
		log:    log,
		events: slices.Clone(events),
		conn:   conn,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	s.start(listenCtx, handler)

	log.Info("Subscribed to events", "events", events)

	return s, nil
}

// handshake sends the subscribe request and checks the reply.
func handshake(ctx context.Context, conn *socket.Conn, payload string) error {
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	if err := conn.Send(protocol.Subscribe, payload); err != nil {
		return contextError(ctx, conn, err)
	}

	reply, err := conn.Receive()
	if err != nil {
		return contextError(ctx, conn, err)
	}

	return protocol.CheckSubscribeReply(reply.Payload)
}

func contextError(ctx context.Context, conn *socket.Conn, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &errors.ConnectionError{Op: "subscribe", Path: conn.Path(), Err: ctxErr}
	}

	return err
}

// start runs the listener and a watcher that closes the connection when the
// listener context ends, which is what unblocks a pending read.
func (s *Subscription) start(ctx context.Context, handler Handler) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.listen(gctx, handler)
	})

	g.Go(func() error {
		<-gctx.Done()

		_ = s.conn.Close()

		return nil
	})

	go func() {
		err := g.Wait()

		s.errMu.Lock()
		s.err = err
		s.errMu.Unlock()

		s.cancel(errors.ErrSubscriptionClosed)

		if err != nil {
			s.log.Warn("Subscription ended", "error", err)
		} else {
			s.log.Debug("Subscription closed")
		}

		// Nothing may touch the logger once done is closed.
		close(s.done)
	}()
}

// listen reads frames until the connection fails or the handler errors.
func (s *Subscription) listen(ctx context.Context, handler Handler) error {
	for {
		frame, err := s.conn.Receive()
		if err != nil {
			return s.stopReason(ctx, err)
		}

		event, err := protocol.EventTypeFromCode(frame.Type)
		if err != nil {
			s.log.Warn("Skipping frame with unknown event code",
				"type", frame.Type,
				"event", frame.Event,
				"length", frame.Length,
			)

			continue
		}

		payload, err := protocol.DecodePayload(frame.Payload)
		if err != nil {
			return err
		}

		if err := handler(ctx, event, payload); err != nil {
			return fmt.Errorf("%s handler: %w", event, err)
		}
	}
}

// stopReason maps a read error to the terminal error of the subscription.
// A read that failed because the listener context ended reports why it ended.
func (s *Subscription) stopReason(ctx context.Context, err error) error {
	if ctx.Err() == nil {
		return err
	}

	cause := context.Cause(ctx)
	if stderrors.Is(cause, errors.ErrSubscriptionClosed) {
		return nil
	}

	return &errors.ConnectionError{Op: "read", Path: s.conn.Path(), Err: cause}
}

// ID returns the unique identifier of the subscription.
func (s *Subscription) ID() string {
	return s.id
}

// Events returns the event types the subscription was created with.
func (s *Subscription) Events() []protocol.EventType {
	return slices.Clone(s.events)
}

// Done returns a channel that is closed when the listener has stopped.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Err returns the terminal error once Done is closed. It is nil while the
// subscription is running and after a local Close.
func (s *Subscription) Err() error {
	s.errMu.RLock()
	defer s.errMu.RUnlock()

	return s.err
}

// Wait blocks until the listener stops and returns its terminal error.
func (s *Subscription) Wait() error {
	<-s.done

	return s.Err()
}

// Close stops the listener, closes the connection, and waits for the
// listener to exit. It is safe to call multiple times. A handler must not
// call Close on its own subscription, or Close on the owning client; it
// returns an error instead.
func (s *Subscription) Close() error {
	s.cancel(errors.ErrSubscriptionClosed)
	<-s.done

	return nil
}
