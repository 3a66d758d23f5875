// Package sh provides an interactive shell talking to the echo server.
package sh

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/foundation.go/pkg/echo"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool

	Shell   *ishell.Shell
	Config  *echo.ClientConfig
	Session *echo.Session
	// Output receives the transcript, stdout if nil.
	Output io.Writer
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly bool

	// commands
	commands = []*ishell.Cmd{
		&ConnectCmd,
		&SendCmd,
		&HelloCmd,
		&CloseCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *echo.ClientConfig) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		Shell:       ishell.New(),
		Config:      conf,
		Output:      conf.Output,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps command func requires a connection.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Session == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

func (s *Shell) output() io.Writer {
	if s.Output != nil {
		return s.Output
	}
	return os.Stdout
}

func (s *Shell) setPrompt(prompt string) {
	if s.Shell != nil {
		s.Shell.SetPrompt(prompt)
	}
}

// ServerAddr resolves "IP" or "IP PORT" into the dial address.
func (s *Shell) ServerAddr(args ...string) (string, error) {
	if len(args) == 0 {
		if s.Config.Server == "" {
			return "", echo.ErrNoServerAddress
		}
		args = []string{s.Config.Server}
	}
	if ip := net.ParseIP(args[0]); ip == nil || ip.To4() == nil {
		return "", fmt.Errorf("%w: %q", echo.ErrInvalidServerAddress, args[0])
	}
	port := s.Config.Port
	if len(args) > 1 {
		val, err := strconv.Atoi(args[1])
		if err != nil || val <= 0 || val > 65535 {
			return "", fmt.Errorf("invalid PORT %q", args[1])
		}
		port = val
	}
	return net.JoinHostPort(args[0], strconv.Itoa(port)), nil
}

// Connect opens a session to the server, replacing the current one.
func (s *Shell) Connect(ctx context.Context, args ...string) error {
	addr, err := s.ServerAddr(args...)
	if err != nil {
		return err
	}
	sess, err := echo.Dial(ctx, addr, s.Config.BufferSize)
	if err != nil {
		return err
	}
	s.Disconnect()
	s.Session = sess
	fmt.Fprintln(s.output(), "OPEND")
	s.setPrompt(addr + " > ")
	return nil
}

// Exchange sends payload and prints the reply. The session is closed
// when the server disconnected or on error.
func (s *Shell) Exchange(payload string) error {
	if s.Session == nil {
		return fmt.Errorf("not connected")
	}
	err := s.Session.Exchange([]byte(payload), s.output())
	if err != nil {
		s.Disconnect()
	}
	if err == io.EOF {
		return nil
	}
	return err
}

// Disconnect closes current session.
func (s *Shell) Disconnect() {
	if s.Session != nil {
		s.Session.Close()
		s.Session = nil
		s.setPrompt(unconnectedPrompt)
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	defer s.Disconnect()
	if s.Config.Server != "" {
		if err := s.Connect(context.Background()); err != nil {
			log.Fatalf("connect %q failed: %v", s.Config.Server, err)
		}
	}

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// ConnectCmd connects the echo server.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "IP [PORT]",
		Func: func(c *ishell.Context) {
			if err := ShellFrom(c).Connect(context.Background(), c.Args...); err != nil {
				c.Err(err)
			}
		},
	}

	// SendCmd sends the text with CRLF appended.
	SendCmd = ishell.Cmd{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "TEXT...",
		Func: MustBeConnected(func(c *ishell.Context) {
			if err := ShellFrom(c).Exchange(strings.Join(c.Args, " ") + "\r\n"); err != nil {
				c.Err(err)
			}
		}),
	}

	// HelloCmd sends the default payload.
	HelloCmd = ishell.Cmd{
		Name: "hello",
		Help: "",
		Func: MustBeConnected(func(c *ishell.Context) {
			if err := ShellFrom(c).Exchange(echo.DefaultPayload); err != nil {
				c.Err(err)
			}
		}),
	}

	// CloseCmd closes current session.
	CloseCmd = ishell.Cmd{
		Name:    "close",
		Aliases: []string{"disconnect", "d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	conf := echo.NewClientConfig()
	args := flag.Args()
	// a leading IP address connects on start.
	if len(args) > 0 {
		if ip := net.ParseIP(args[0]); ip != nil {
			conf.Server, args = args[0], args[1:]
		}
	}
	New(conf).Run(args...)
}
