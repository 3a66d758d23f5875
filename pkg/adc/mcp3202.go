// Package adc reads the MCP3202 12-bit ADC on the ADC-DAC Pi board over
// SPI and measures the sampling rate.
package adc

import (
	"fmt"

	"periph.io/x/conn/v3"
)

// Resolution is the number of steps of the 12-bit converter.
const Resolution = 4096

// DefaultRefVoltage is the reference voltage of the board.
const DefaultRefVoltage = 3.3

// Mode selects the input configuration.
type Mode int

// Input modes.
const (
	SingleEnded  Mode = 0
	Differential Mode = 1
)

// ADC is an MCP3202 on a SPI connection.
type ADC struct {
	Conn       conn.Conn
	RefVoltage float64
}

// New creates an ADC.
func New(c conn.Conn) *ADC {
	return &ADC{Conn: c, RefVoltage: DefaultRefVoltage}
}

// ReadRaw converts once and returns 0 - 4095. channel is 1 or 2.
func (a *ADC) ReadRaw(channel int, mode Mode) (int, error) {
	if channel < 1 || channel > 2 {
		return 0, fmt.Errorf("invalid channel %d", channel)
	}
	// start bit, then SGL/DIFF and ODD/SIGN bits, MSB first.
	ctl := byte(channel-1) << 6
	if mode == SingleEnded {
		ctl |= 0x80
	}
	var r [3]byte
	if err := a.Conn.Tx([]byte{0x01, ctl, 0x00}, r[:]); err != nil {
		return 0, fmt.Errorf("adc: %w", err)
	}
	return int(r[1]&0x0f)<<8 | int(r[2]), nil
}

// ReadVoltage converts once and returns the voltage.
func (a *ADC) ReadVoltage(channel int, mode Mode) (float64, error) {
	raw, err := a.ReadRaw(channel, mode)
	if err != nil {
		return 0, err
	}
	return a.RefVoltage * float64(raw) / Resolution, nil
}
