package echo

import (
	"flag"
	"io"
	"os"
	"strconv"
	"time"
)

// Defaults shared by the server and the client.
const (
	DefaultPort       = 57975
	DefaultBufferSize = 1024
	DefaultInterface  = "wlan0"
)

// DefaultPayload is the message sent by the client on every exchange.
const DefaultPayload = "Hello\r\n"

// Config provides options for the echo server.
type Config struct {
	Port       int
	BufferSize int
	// Backlog is the depth of the pending-connection queue.
	Backlog int
	// Interface is only used to display the server address.
	Interface string
	// WriteTimeout bounds a single echo write, 0 blocks until written.
	// An expired write is handled as a transient would-block condition.
	WriteTimeout time.Duration
	// Output receives the transcript (WAITING, OPEND, dumps ...).
	Output io.Writer
}

// ClientConfig provides options for the echo client.
type ClientConfig struct {
	// Server is the IPv4 address of the echo server.
	Server     string
	Port       int
	Count      int
	Payload    string
	BufferSize int
	Interface  string
	Output     io.Writer
}

var defaultConfig = Config{
	Port:       DefaultPort,
	BufferSize: DefaultBufferSize,
	Backlog:    1,
	Interface:  DefaultInterface,
	Output:     os.Stdout,
}

var defaultClientConfig = ClientConfig{
	Port:       DefaultPort,
	Count:      2,
	Payload:    DefaultPayload,
	BufferSize: DefaultBufferSize,
	Interface:  DefaultInterface,
	Output:     os.Stdout,
}

func init() {
	if val := os.Getenv("FOUNDATION_ECHO_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			defaultConfig.Port = port
			defaultClientConfig.Port = port
		}
	}
	if val := os.Getenv("FOUNDATION_IFACE"); val != "" {
		defaultConfig.Interface = val
		defaultClientConfig.Interface = val
	}
}

// SetupFlags sets up command line flags for the server.
func SetupFlags() {
	flag.IntVar(&defaultConfig.Port, "port", defaultConfig.Port, "TCP port to listen on.")
	flag.IntVar(&defaultConfig.BufferSize, "buffer", defaultConfig.BufferSize, "Receive buffer size in bytes.")
	flag.IntVar(&defaultConfig.Backlog, "backlog", defaultConfig.Backlog, "Listen backlog.")
	flag.StringVar(&defaultConfig.Interface, "iface", defaultConfig.Interface, "Network interface to display the address of.")
	flag.DurationVar(&defaultConfig.WriteTimeout, "write-timeout", defaultConfig.WriteTimeout, "Timeout of a single echo write, 0 for none.")
}

// SetupClientFlags sets up command line flags for the client.
func SetupClientFlags() {
	flag.IntVar(&defaultClientConfig.Port, "port", defaultClientConfig.Port, "TCP port of the server.")
	flag.IntVar(&defaultClientConfig.Count, "count", defaultClientConfig.Count, "Number of exchanges.")
	flag.StringVar(&defaultClientConfig.Payload, "payload", defaultClientConfig.Payload, "Message to send.")
	flag.IntVar(&defaultClientConfig.BufferSize, "buffer", defaultClientConfig.BufferSize, "Receive buffer size in bytes.")
	flag.StringVar(&defaultClientConfig.Interface, "iface", defaultClientConfig.Interface, "Network interface to display the address of.")
}

// Default gets the default server config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a server Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// DefaultClient gets the default client config.
func DefaultClient() *ClientConfig {
	return &defaultClientConfig
}

// NewClientConfig creates a ClientConfig with default configurations.
func NewClientConfig() *ClientConfig {
	conf := defaultClientConfig
	return &conf
}

// NewServer creates a Server using current config.
func (c *Config) NewServer() *Server {
	return NewServer(*c)
}

// NewClient creates a Client using current config.
func (c *ClientConfig) NewClient() *Client {
	return NewClient(*c)
}
