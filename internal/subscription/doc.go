// Package subscription implements the event subscription engine.
//
// Subscribe opens a dedicated connection, performs the subscribe handshake,
// and on success starts a listener goroutine that reads event frames and
// invokes the handler for each one, in wire order, never concurrently.
//
// The returned Subscription is the handle to that goroutine:
//
//	sub, err := subscription.Subscribe(ctx, log, transport,
//	    []protocol.EventType{protocol.EventWindow},
//	    func(ctx context.Context, event protocol.EventType, payload any) error {
//	        fmt.Println(event, payload)
//	        return nil
//	    })
//	if err != nil {
//	    return err // handshake refused: no goroutine was started
//	}
//	defer sub.Close()
//
//	<-sub.Done()
//	return sub.Err()
//
// The listener stops when ctx is cancelled, Close is called, a frame cannot
// be read or decoded, or the handler returns an error. It never reconnects.
package subscription
