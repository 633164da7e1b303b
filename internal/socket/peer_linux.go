//go:build linux

package socket

import (
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// peerUID reads SO_PEERCRED from a unix socket connection.
func peerUID(nc net.Conn) (uint32, bool, error) {
	sc, ok := nc.(syscall.Conn)
	if !ok {
		return 0, false, nil
	}

	raw, err := sc.SyscallConn()
	if err != nil {
		return 0, true, err
	}

	var (
		cred    *unix.Ucred
		credErr error
	)

	if err := raw.Control(func(fd uintptr) {
		cred, credErr = unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
	}); err != nil {
		return 0, true, err
	}

	if credErr != nil {
		return 0, true, credErr
	}

	return cred.Uid, true, nil
}
