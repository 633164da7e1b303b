// Package protocol implements the i3 IPC wire format.
//
// Every message exchanged with the window manager, in either direction, is a
// frame:
//
//	"i3-ipc" | length uint32 | type uint32 | payload (length bytes of JSON)
//
// Both integers use the host's native byte order. Event frames pushed on a
// subscribed connection carry the same layout with the most significant bit
// of the type set; DecodeHeader always strips that bit and reports it
// separately in Header.Event.
//
// The package provides:
//   - Encode and DecodeHeader, pure transforms with no I/O
//   - ReadFrame and WriteFrame, which apply the read-until-complete and
//     write-until-complete discipline over any io.Reader / io.Writer
//   - The closed MessageType and EventType enumerations
//   - DecodePayload and reply checks for subscribe and run_command replies
//
// Example usage:
//
//	frame, err := protocol.Encode(uint32(protocol.GetTree), "")
//	if err != nil {
//	    return err
//	}
//	if _, err := conn.Write(frame); err != nil {
//	    return err
//	}
//	reply, err := protocol.ReadFrame(conn, 0)
package protocol
