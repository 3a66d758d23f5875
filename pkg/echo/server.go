// Package echo implements the TCP echo server and client demos.
//
// The server serves one connection at a time and sends back exactly the
// bytes it receives. The client sends a fixed message a fixed number of
// times and waits for the reply after each send. Both print a transcript
// with hex dumps of every transfer.
package echo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/foundation.go/pkg/dump"
	fx "github.com/robotalks/foundation.go/pkg/framework"
)

// Server is a single-connection TCP echo server.
type Server struct {
	Config Config

	lock    sync.Mutex
	active  net.Conn
	stopped bool
}

// NewServer creates a Server.
func NewServer(conf Config) *Server {
	if conf.BufferSize <= 0 {
		conf.BufferSize = DefaultBufferSize
	}
	if conf.Backlog <= 0 {
		conf.Backlog = 1
	}
	if conf.Output == nil {
		conf.Output = io.Discard
	}
	return &Server{Config: conf}
}

// Name implements Named.
func (s *Server) Name() string {
	return "echo-server"
}

// Run implements Runnable. It listens on the configured port and serves.
func (s *Server) Run(ctx context.Context) error {
	fmt.Fprintf(s.Config.Output, "SERVER IP = %s, PORT = %d\n", InterfaceIPv4(s.Config.Interface), s.Config.Port)
	l, err := Listen(s.Config.Port, s.Config.Backlog)
	if err != nil {
		return err
	}
	glog.Infof("listening on %s", l.Addr())
	return s.Serve(ctx, l)
}

// Serve accepts connections from l and serves them one after another.
// It only returns on a fatal error or when ctx is canceled, and l is
// closed when it returns.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	return fx.RunWithContextCancel(ctx, func() {
		l.Close()
		s.stop()
	}, func() error {
		defer l.Close()
		return s.acceptLoop(l)
	})
}

func (s *Server) acceptLoop(l net.Listener) error {
	for {
		fmt.Fprintln(s.Config.Output, "WAITING")
		conn, err := l.Accept()
		if err != nil {
			err = fmt.Errorf("accept error: %w", err)
			s.logError(err)
			return err
		}
		if !s.setActive(conn) {
			conn.Close()
			return net.ErrClosed
		}
		fmt.Fprintf(s.Config.Output, "OPEND (CLIENT IP = %s)\n", remoteIP(conn))
		err = s.ServeConn(conn)
		s.setActive(nil)
		conn.Close()
		if err != nil {
			s.logError(err)
			return err
		}
	}
}

// logError logs err unless it's caused by stopping the server.
func (s *Server) logError(err error) {
	if s.isStopped() || errors.Is(err, net.ErrClosed) {
		glog.V(2).Info(err)
		return
	}
	glog.Error(err)
}

// ServeConn echoes everything received from conn until the peer
// disconnects. A non-nil error is fatal to the server.
func (s *Server) ServeConn(conn net.Conn) error {
	buf := make([]byte, s.Config.BufferSize)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			switch {
			case IsDisconnect(err):
				glog.V(2).Infof("recv from %s: %v", conn.RemoteAddr(), err)
				fmt.Fprintln(s.Config.Output, "DISCONNECTED")
				return nil
			case IsWouldBlock(err):
				glog.Warningf("recv from %s: %v", conn.RemoteAddr(), err)
				fmt.Fprintln(s.Config.Output, "OVERFLOW")
				continue
			default:
				return fmt.Errorf("recv error: %w", err)
			}
		}
		if n == 0 {
			fmt.Fprintln(s.Config.Output, "DISCONNECTED")
			return nil
		}
		fmt.Fprintln(s.Config.Output, dump.Transfer(dump.Read, buf[:n]))

		disconnected, err := s.echo(conn, buf[:n])
		if err != nil || disconnected {
			return err
		}
	}
}

// echo writes p back once. A short write is reported but never retried.
func (s *Server) echo(conn net.Conn, p []byte) (disconnected bool, err error) {
	if s.Config.WriteTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(s.Config.WriteTimeout)); err != nil {
			glog.Warningf("set write deadline on %s: %v", conn.RemoteAddr(), err)
		}
	}
	n, err := conn.Write(p)
	if err != nil {
		switch {
		case IsSendDisconnect(err):
			glog.V(2).Infof("send to %s: %v", conn.RemoteAddr(), err)
			fmt.Fprintln(s.Config.Output, "DISCONNECTED")
			return true, nil
		case IsWouldBlock(err):
			if n == 0 {
				glog.Warningf("send to %s: buffer full, %d bytes dropped", conn.RemoteAddr(), len(p))
				fmt.Fprintln(s.Config.Output, "OVERFLOW")
				return false, nil
			}
		default:
			return false, fmt.Errorf("send error: %w", err)
		}
	}
	fmt.Fprintln(s.Config.Output, dump.Transfer(dump.Write, p[:n]))
	if n < len(p) {
		glog.Warningf("send to %s: only %d of %d bytes sent", conn.RemoteAddr(), n, len(p))
		fmt.Fprintln(s.Config.Output, "NOT ENOUGH")
	}
	return false, nil
}

func (s *Server) setActive(conn net.Conn) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.stopped && conn != nil {
		return false
	}
	s.active = conn
	return true
}

func (s *Server) isStopped() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.stopped
}

func (s *Server) stop() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.stopped = true
	if s.active != nil {
		s.active.Close()
	}
}
