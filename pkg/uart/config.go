package uart

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.bug.st/serial"
)

// Config defines the serial port and echo options.
type Config struct {
	Device     string
	BaudRate   int
	BufferSize int
	// ReadTimeout makes Read return with no data if nothing is
	// received in time.
	ReadTimeout time.Duration
	Output      io.Writer
}

var defaultConfig = Config{
	Device:      "/dev/ttyUSB0",
	BaudRate:    115200,
	BufferSize:  256,
	ReadTimeout: 100 * time.Millisecond,
	Output:      os.Stdout,
}

func init() {
	if val := os.Getenv("FOUNDATION_SERIAL_DEVICE"); val != "" {
		defaultConfig.Device = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Device, "device", defaultConfig.Device, "Serial device, e.g. /dev/ttyAMA0, /dev/ttyUSB0, /dev/ttyACM0.")
	flag.IntVar(&defaultConfig.BaudRate, "baud", defaultConfig.BaudRate, "Baud rate.")
	flag.IntVar(&defaultConfig.BufferSize, "buffer", defaultConfig.BufferSize, "Receive buffer size in bytes.")
	flag.DurationVar(&defaultConfig.ReadTimeout, "read-timeout", defaultConfig.ReadTimeout, "Read timeout.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Open opens the serial port with 8 data bits, no parity and 1 stop bit,
// and discards anything pending in the buffers.
func (c *Config) Open() (serial.Port, error) {
	port, err := serial.Open(c.Device, &serial.Mode{
		BaudRate: c.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open error: %w", err)
	}
	if err = c.setup(port); err != nil {
		port.Close()
		return nil, err
	}
	return port, nil
}

func (c *Config) setup(port serial.Port) error {
	if c.ReadTimeout > 0 {
		if err := port.SetReadTimeout(c.ReadTimeout); err != nil {
			return fmt.Errorf("set read timeout: %w", err)
		}
	}
	if err := port.ResetInputBuffer(); err != nil {
		return fmt.Errorf("flush input: %w", err)
	}
	if err := port.ResetOutputBuffer(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

// NewEcho creates an Echo over the port using the config.
func (c *Config) NewEcho(port io.ReadWriter) *Echo {
	return &Echo{
		Port:       port,
		BufferSize: c.BufferSize,
		Output:     c.Output,
	}
}
