// Package pir polls a PIR motion sensor attached to a GrovePi+ digital port.
package pir

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	fx "github.com/robotalks/foundation.go/pkg/framework"
	"github.com/robotalks/foundation.go/pkg/grovepi"
	"github.com/robotalks/foundation.go/pkg/telemetry"
)

// SensorName is the sensor name of published readings.
const SensorName = "pir"

// Config defines the poller options.
type Config struct {
	// Bus is the I2C bus name, empty for the first available.
	Bus      string
	Pin      int
	Interval time.Duration
	Output   io.Writer
}

var defaultConfig = Config{
	Pin:      2,
	Interval: 500 * time.Millisecond,
	Output:   os.Stdout,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Bus, "i2c", defaultConfig.Bus, "I2C bus name, empty for the first one.")
	flag.IntVar(&defaultConfig.Pin, "pin", defaultConfig.Pin, "Digital port (D2 = 2) of the sensor.")
	flag.DurationVar(&defaultConfig.Interval, "interval", defaultConfig.Interval, "Polling interval.")
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

// OpenBus initializes host drivers and opens the I2C bus.
func (c *Config) OpenBus() (i2c.BusCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	bus, err := i2creg.Open(c.Bus)
	if err != nil {
		return nil, fmt.Errorf("open I2C bus %q: %w", c.Bus, err)
	}
	return bus, nil
}

// NewSensor creates a Sensor reading from the board.
func (c *Config) NewSensor(board *grovepi.Dev, pub telemetry.Publisher) *Sensor {
	return &Sensor{
		Reader:    board,
		Pin:       byte(c.Pin),
		Publisher: pub,
		Output:    c.Output,
	}
}

// NewLoop creates the polling loop with the sensor.
func (c *Config) NewLoop(s *Sensor) *fx.Loop {
	loop := fx.NewLoop()
	loop.Interval = c.Interval
	return loop.Add(s)
}

// Setup prints the firmware version and configures the pin as input.
func Setup(board *grovepi.Dev, pin int, out io.Writer) error {
	v, err := board.Version()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Version: %s\n", v)
	return board.PinMode(byte(pin), grovepi.Input)
}
