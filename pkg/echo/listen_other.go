//go:build !linux

package echo

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/golang/glog"
)

// Listen opens an IPv4 listening socket on all interfaces.
// The backlog is decided by the system.
func Listen(port, backlog int) (net.Listener, error) {
	glog.V(1).Infof("backlog %d ignored on this platform", backlog)
	var lc net.ListenConfig
	l, err := lc.Listen(context.Background(), "tcp4", ":"+strconv.Itoa(port))
	if err != nil {
		return nil, fmt.Errorf("bind error: %w", err)
	}
	return l, nil
}
