package web

import (
	"errors"
	"net"
	"time"

	"golang.org/x/sys/unix"
)

// tcpRTT returns the kernel's smoothed round trip time estimate for a
// TCP connection.
func tcpRTT(conn net.Conn) (time.Duration, error) {
	tcp, ok := conn.(*net.TCPConn)
	if !ok {
		return 0, errors.New("not a TCP connection")
	}
	raw, err := tcp.SyscallConn()
	if err != nil {
		return 0, err
	}

	var info *unix.TCPInfo
	ctrlErr := raw.Control(func(fd uintptr) {
		info, err = unix.GetsockoptTCPInfo(int(fd), unix.IPPROTO_TCP, unix.TCP_INFO)
	})
	switch {
	case ctrlErr != nil:
		return 0, ctrlErr
	case err != nil:
		return 0, err
	}

	return time.Duration(info.Rtt) * time.Microsecond, nil
}
