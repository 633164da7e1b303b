package protocol

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/wagiedev/i3ipc-go/internal/errors"
)

// Frame is one complete message read off the wire.
type Frame struct {
	Header
	Payload []byte
}

// WriteFrame encodes a frame and writes all of it to w.
// Short writes are retried until the frame is sent or w fails.
func WriteFrame(w io.Writer, msgType uint32, payload string) error {
	buf, err := Encode(msgType, payload)
	if err != nil {
		return err
	}

	for len(buf) > 0 {
		n, err := w.Write(buf)
		if err != nil {
			return &errors.ConnectionError{Op: "write", Err: err}
		}

		buf = buf[n:]
	}

	return nil
}

// ReadFrame reads exactly one frame from r, blocking until the header and
// the announced payload have fully arrived.
//
// A clean EOF before the first header byte is reported as a ConnectionError
// (the peer hung up between frames). EOF anywhere inside a frame is a
// FrameError. When maxPayload is non-zero, larger frames are rejected before
// the payload buffer is allocated.
func ReadFrame(r io.Reader, maxPayload uint32) (Frame, error) {
	prefix := make([]byte, HeaderSize)

	n, err := io.ReadFull(r, prefix)
	if err != nil {
		if n == 0 && stderrors.Is(err, io.EOF) {
			return Frame{}, &errors.ConnectionError{Op: "read", Err: err}
		}

		return Frame{}, readError("truncated header", HeaderSize, n, err)
	}

	h, rest, err := DecodeHeader(prefix)
	if err != nil {
		return Frame{}, err
	}

	if maxPayload > 0 && h.Length > maxPayload {
		return Frame{}, &errors.FrameError{
			Reason: "payload exceeds limit",
			Want:   int(maxPayload),
			Got:    int(h.Length),
		}
	}

	payload := make([]byte, h.Length)
	filled := copy(payload, rest)

	n, err = io.ReadFull(r, payload[filled:])
	if err != nil {
		return Frame{}, readError("truncated payload", int(h.Length), filled+n, err)
	}

	return Frame{Header: h, Payload: payload}, nil
}

func readError(reason string, want, got int, err error) error {
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return &errors.FrameError{Reason: reason, Want: want, Got: got, Err: io.ErrUnexpectedEOF}
	}

	return &errors.ConnectionError{Op: "read", Err: fmt.Errorf("%s: %w", reason, err)}
}
