package echo

import (
	"errors"
	"io"
	"net"
	"syscall"
)

var (
	// ErrNoServerAddress indicates the client is started without the server address.
	ErrNoServerAddress = errors.New("SERVER IP ADDRESS ERROR")
	// ErrInvalidServerAddress indicates the server address is not an IPv4 address.
	ErrInvalidServerAddress = errors.New("invalid server IPv4 address")
)

// IsDisconnect determines if err from a receive means the peer has
// closed the connection. Any other receive error is fatal.
func IsDisconnect(err error) bool {
	return errors.Is(err, io.EOF)
}

// IsSendDisconnect determines if err from a send means the peer has gone.
func IsSendDisconnect(err error) bool {
	return errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED)
}

// IsWouldBlock determines if err is a transient condition that the
// operation can't proceed immediately, e.g. the send buffer is full.
func IsWouldBlock(err error) bool {
	// EWOULDBLOCK equals EAGAIN on linux.
	if errors.Is(err, syscall.EAGAIN) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
