package echo

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/golang/glog"

	"github.com/robotalks/foundation.go/pkg/dump"
)

// Session is a client connection to the echo server with a single message
// buffer reused by every send and receive.
type Session struct {
	Conn net.Conn

	buf []byte
}

// Dial connects to the echo server at addr over IPv4.
func Dial(ctx context.Context, addr string, bufferSize int) (*Session, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp4", addr)
	if err != nil {
		return nil, fmt.Errorf("connect error: %w", err)
	}
	return NewSession(conn, bufferSize), nil
}

// NewSession wraps an established connection.
func NewSession(conn net.Conn, bufferSize int) *Session {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Session{Conn: conn, buf: make([]byte, bufferSize)}
}

// Send copies p into the message buffer and sends it once. p is truncated
// to the buffer size. It returns the number of bytes sent.
func (s *Session) Send(p []byte) (int, error) {
	n := copy(s.buf, p)
	return s.Conn.Write(s.buf[:n])
}

// Receive waits for data from the server. The returned slice is only
// valid until the next call of Send or Receive. io.EOF is returned
// when the server closed the connection.
func (s *Session) Receive() ([]byte, error) {
	n, err := s.Conn.Read(s.buf)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, io.EOF
	}
	return s.buf[:n], nil
}

// Exchange sends p once and dumps the reply to out. A full send buffer
// is reported as OVERFLOW and skips the exchange. io.EOF is returned
// after DISCONNECTED when the server has gone.
func (s *Session) Exchange(p []byte, out io.Writer) error {
	n, err := s.Send(p)
	if err != nil {
		switch {
		case IsSendDisconnect(err):
			glog.V(2).Infof("send: %v", err)
			fmt.Fprintln(out, "DISCONNECTED")
			return io.EOF
		case IsWouldBlock(err):
			glog.Warningf("send: %v", err)
			fmt.Fprintln(out, "OVERFLOW")
			return nil
		default:
			return fmt.Errorf("send error: %w", err)
		}
	}
	fmt.Fprintln(out, dump.Transfer(dump.Write, p[:n]))

	reply, err := s.Receive()
	if err != nil {
		if IsDisconnect(err) {
			glog.V(2).Infof("recv: %v", err)
			fmt.Fprintln(out, "DISCONNECTED")
			return io.EOF
		}
		return fmt.Errorf("recv error: %w", err)
	}
	fmt.Fprintln(out, dump.Transfer(dump.Read, reply))
	return nil
}

// Close implements io.Closer.
func (s *Session) Close() error {
	return s.Conn.Close()
}
