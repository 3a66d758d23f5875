// Package uart provides the serial port echo-back demo.
package uart

import (
	"context"
	"fmt"
	"io"

	"github.com/golang/glog"

	"github.com/robotalks/foundation.go/pkg/dump"
	fx "github.com/robotalks/foundation.go/pkg/framework"
)

// Echo sends back everything received from Port.
type Echo struct {
	Port       io.ReadWriter
	BufferSize int
	Output     io.Writer
}

// Name implements Named.
func (e *Echo) Name() string {
	return "serial-echo"
}

// Run implements Runnable. If Port is an io.Closer, it's closed when
// Run returns.
func (e *Echo) Run(ctx context.Context) error {
	if closer, ok := e.Port.(io.Closer); ok {
		return fx.RunWithContextCloser(ctx, closer, func() error {
			return e.loop(ctx)
		})
	}
	return e.loop(ctx)
}

func (e *Echo) loop(ctx context.Context) error {
	size := e.BufferSize
	if size <= 0 {
		size = defaultConfig.BufferSize
	}
	out := e.Output
	if out == nil {
		out = io.Discard
	}
	buf := make([]byte, size)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n, err := e.Port.Read(buf)
		if err != nil {
			glog.Errorf("read error: %v", err)
			return fmt.Errorf("read error: %w", err)
		}
		// read timeout
		if n == 0 {
			continue
		}
		fmt.Fprintln(out, dump.Inline(dump.Read, buf[:n]))

		// a short write is not retried.
		n, err = e.Port.Write(buf[:n])
		if err != nil {
			glog.Errorf("write error: %v", err)
			return fmt.Errorf("write error: %w", err)
		}
		fmt.Fprintln(out, dump.Inline(dump.Write, buf[:n]))
	}
}
