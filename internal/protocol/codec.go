package protocol

import (
	"encoding/binary"
	"math"

	"github.com/wagiedev/i3ipc-go/internal/errors"
)

const (
	// Magic is the ASCII preamble that opens every frame.
	Magic = "i3-ipc"

	// HeaderSize is the fixed frame prefix: preamble, length, and type.
	HeaderSize = len(Magic) + 4 + 4
)

// Header is the decoded fixed prefix of a frame.
type Header struct {
	// Length is the payload byte count.
	Length uint32
	// Type is the message or event code with EventFlag cleared.
	Type uint32
	// Event reports whether EventFlag was set on the wire.
	Event bool
}

// Encode builds a complete frame for the given type and payload text.
func Encode(msgType uint32, payload string) ([]byte, error) {
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, &errors.FrameError{
			Reason: "payload length does not fit in 32 bits",
			Got:    len(payload),
		}
	}

	buf := make([]byte, HeaderSize+len(payload))
	copy(buf, Magic)
	binary.NativeEndian.PutUint32(buf[len(Magic):], uint32(len(payload)))
	binary.NativeEndian.PutUint32(buf[len(Magic)+4:], msgType)
	copy(buf[HeaderSize:], payload)

	return buf, nil
}

// DecodeHeader reads length and type from the fixed offsets of a frame
// prefix and returns any bytes that follow it. The preamble is not checked.
func DecodeHeader(b []byte) (Header, []byte, error) {
	if len(b) < HeaderSize {
		return Header{}, nil, &errors.FrameError{
			Reason: "short header",
			Want:   HeaderSize,
			Got:    len(b),
		}
	}

	raw := binary.NativeEndian.Uint32(b[len(Magic)+4 : HeaderSize])

	h := Header{
		Length: binary.NativeEndian.Uint32(b[len(Magic) : len(Magic)+4]),
		Type:   raw &^ EventFlag,
		Event:  raw&EventFlag != 0,
	}

	return h, b[HeaderSize:], nil
}
