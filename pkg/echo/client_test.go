package echo

import (
	"context"
	"io"
	"net"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/nettest"
)

func newTestClient(port int, out io.Writer) *Client {
	conf := NewClientConfig()
	conf.Server = "127.0.0.1"
	conf.Port = port
	conf.Output = out
	return conf.NewClient()
}

func TestClientExchange(t *testing.T) {
	env := startServer(t)
	var out syncBuffer
	require.NoError(t, newTestClient(env.addr.Port, &out).Run(context.Background()))

	lines := out.Lines()
	require.Len(t, lines, 7)
	require.Regexp(t, `^CLIENT IP = [0-9.]+, PORT = [0-9]+$`, lines[0])
	require.Equal(t, []string{
		"WAITING",
		"OPEND",
		"W(7Byte) 48h 65h 6Ch 6Ch 6Fh 0Dh 0Ah",
		"R(7Byte) 48h 65h 6Ch 6Ch 6Fh 0Dh 0Ah",
		"W(7Byte) 48h 65h 6Ch 6Ch 6Fh 0Dh 0Ah",
		"R(7Byte) 48h 65h 6Ch 6Ch 6Fh 0Dh 0Ah",
	}, lines[1:])

	env.waitLine("DISCONNECTED")
}

func TestClientServerDisconnects(t *testing.T) {
	l, err := nettest.NewLocalListener("tcp4")
	require.NoError(t, err)
	defer l.Close()
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		io.ReadFull(conn, make([]byte, len(DefaultPayload)))
		conn.Close()
	}()

	var out syncBuffer
	err = newTestClient(l.Addr().(*net.TCPAddr).Port, &out).Run(context.Background())
	require.NoError(t, err)
	lines := out.Lines()
	require.Equal(t, []string{
		"W(7Byte) 48h 65h 6Ch 6Ch 6Fh 0Dh 0Ah",
		"DISCONNECTED",
	}, lines[len(lines)-2:])
}

func TestClientResetByServerIsFatal(t *testing.T) {
	l, err := nettest.NewLocalListener("tcp4")
	require.NoError(t, err)
	defer l.Close()
	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		io.ReadFull(conn, make([]byte, len(DefaultPayload)))
		conn.(*net.TCPConn).SetLinger(0)
		conn.Close()
	}()

	var out syncBuffer
	err = newTestClient(l.Addr().(*net.TCPAddr).Port, &out).Run(context.Background())
	require.ErrorIs(t, err, syscall.ECONNRESET)
	require.Contains(t, err.Error(), "recv error")
	lines := out.Lines()
	require.Equal(t, "W(7Byte) 48h 65h 6Ch 6Ch 6Fh 0Dh 0Ah", lines[len(lines)-1])
}

func TestClientAddressRequired(t *testing.T) {
	conf := NewClientConfig()
	require.ErrorIs(t, conf.NewClient().Run(context.Background()), ErrNoServerAddress)
	conf.Server = "localhost"
	require.ErrorIs(t, conf.NewClient().Run(context.Background()), ErrInvalidServerAddress)
	conf.Server = "::1"
	require.ErrorIs(t, conf.NewClient().Run(context.Background()), ErrInvalidServerAddress)
}

func TestClientConnectError(t *testing.T) {
	l, err := nettest.NewLocalListener("tcp4")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	err = newTestClient(port, io.Discard).Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "connect error")
}
