package echo

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"

	fx "github.com/robotalks/foundation.go/pkg/framework"
)

// Client sends a fixed payload to the echo server a fixed number of times.
type Client struct {
	Config ClientConfig
}

// NewClient creates a Client.
func NewClient(conf ClientConfig) *Client {
	if conf.Output == nil {
		conf.Output = io.Discard
	}
	return &Client{Config: conf}
}

// Name implements Named.
func (c *Client) Name() string {
	return "echo-client"
}

// Run implements Runnable. It returns nil when all exchanges are done or
// the server disconnected.
func (c *Client) Run(ctx context.Context) error {
	if c.Config.Server == "" {
		return ErrNoServerAddress
	}
	if ip := net.ParseIP(c.Config.Server); ip == nil || ip.To4() == nil {
		return fmt.Errorf("%w: %q", ErrInvalidServerAddress, c.Config.Server)
	}

	fmt.Fprintf(c.Config.Output, "CLIENT IP = %s, PORT = %d\n", InterfaceIPv4(c.Config.Interface), c.Config.Port)
	fmt.Fprintln(c.Config.Output, "WAITING")
	sess, err := Dial(ctx, net.JoinHostPort(c.Config.Server, strconv.Itoa(c.Config.Port)), c.Config.BufferSize)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.Config.Output, "OPEND")
	return fx.RunWithContextCloser(ctx, sess, func() error {
		return c.exchange(sess)
	})
}

func (c *Client) exchange(sess *Session) error {
	payload := []byte(c.Config.Payload)
	for i := 0; i < c.Config.Count; i++ {
		if err := sess.Exchange(payload, c.Config.Output); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
	return nil
}
