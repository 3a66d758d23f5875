package adc

import (
	"flag"
	"fmt"
	"io"
	"os"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Config defines the benchmark options.
type Config struct {
	// Port is the SPI port name, empty for the first available.
	Port    string
	Speed   physic.Frequency
	Samples int
	Channel int
	Mode    int
	Raw     bool
	Output  io.Writer
}

var defaultConfig = Config{
	Speed:   1100 * physic.KiloHertz,
	Samples: 240,
	Channel: 1,
	Mode:    int(SingleEnded),
	Output:  os.Stdout,
}

func init() {
	if val := os.Getenv("FOUNDATION_SPI_PORT"); val != "" {
		defaultConfig.Port = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, "spi", defaultConfig.Port, "SPI port name, empty for the first one.")
	flag.Var(&defaultConfig.Speed, "speed", "SPI clock frequency.")
	flag.IntVar(&defaultConfig.Samples, "samples", defaultConfig.Samples, "Number of samples.")
	flag.IntVar(&defaultConfig.Channel, "channel", defaultConfig.Channel, "ADC channel 1 - 2.")
	flag.IntVar(&defaultConfig.Mode, "mode", defaultConfig.Mode, "0 = single ended, 1 = differential.")
	flag.BoolVar(&defaultConfig.Raw, "raw", defaultConfig.Raw, "Average raw values instead of voltages.")
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

// Open initializes host drivers and connects the ADC on the SPI port.
// The returned closer releases the port.
func (c *Config) Open() (*ADC, io.Closer, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("host init: %w", err)
	}
	port, err := spireg.Open(c.Port)
	if err != nil {
		return nil, nil, fmt.Errorf("open SPI port %q: %w", c.Port, err)
	}
	conn, err := port.Connect(c.Speed, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, nil, fmt.Errorf("connect SPI port %q: %w", c.Port, err)
	}
	return New(conn), port, nil
}

// NewBenchmark creates a Benchmark on the ADC.
func (c *Config) NewBenchmark(a *ADC) *Benchmark {
	return &Benchmark{
		ADC:     a,
		Samples: c.Samples,
		Channel: c.Channel,
		Mode:    Mode(c.Mode),
		Voltage: !c.Raw,
	}
}
