//go:build linux

package echo

import (
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// Listen opens an IPv4 listening socket on all interfaces with SO_REUSEADDR
// and the specified backlog.
func Listen(port, backlog int) (net.Listener, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open error: %w", err)
	}
	// allows re-binding immediately after the server is restarted.
	if err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("set error: %w", err)
	}
	if err = unix.Bind(fd, &unix.SockaddrInet4{Port: port}); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("bind error: %w", err)
	}
	if err = unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("listen error: %w", err)
	}
	f := os.NewFile(uintptr(fd), fmt.Sprintf("tcp4:%d", port))
	defer f.Close()
	l, err := net.FileListener(f)
	if err != nil {
		return nil, fmt.Errorf("listen error: %w", err)
	}
	return l, nil
}
