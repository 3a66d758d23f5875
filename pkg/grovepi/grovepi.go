// Package grovepi drives the GrovePi+ board over I2C.
//
// The board firmware accepts 4-byte commands written to register 1 and
// replies on the next read.
package grovepi

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
)

// Addr is the I2C address of the GrovePi+ board.
const Addr uint16 = 0x04

// Firmware commands.
const (
	cmdDigitalRead  byte = 1
	cmdDigitalWrite byte = 2
	cmdAnalogRead   byte = 3
	cmdPinMode      byte = 5
	cmdVersion      byte = 8

	register byte = 1
)

// Pin modes.
const (
	Input  byte = 0
	Output byte = 1
)

// Version is the firmware version.
type Version struct {
	Major, Minor, Patch byte
}

// String implements fmt.Stringer.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Dev is a GrovePi+ board on the bus.
type Dev struct {
	// Delay is the time the firmware needs before a reply can be read.
	Delay time.Duration

	dev i2c.Dev
}

// New creates a Dev on the bus.
func New(bus i2c.Bus) *Dev {
	return &Dev{
		Delay: 10 * time.Millisecond,
		dev:   i2c.Dev{Bus: bus, Addr: Addr},
	}
}

// String implements fmt.Stringer.
func (d *Dev) String() string {
	return "GrovePi+@" + d.dev.String()
}

// Version reads the firmware version.
func (d *Dev) Version() (v Version, err error) {
	var r [4]byte
	if err = d.query(cmdVersion, 0, 0, 0, r[:]); err == nil {
		v = Version{Major: r[1], Minor: r[2], Patch: r[3]}
	}
	return
}

// PinMode configures a digital pin as Input or Output.
func (d *Dev) PinMode(pin, mode byte) error {
	return d.command(cmdPinMode, pin, mode, 0)
}

// DigitalRead reads the level of a digital pin.
func (d *Dev) DigitalRead(pin byte) (byte, error) {
	var r [1]byte
	if err := d.query(cmdDigitalRead, pin, 0, 0, r[:]); err != nil {
		return 0, err
	}
	return r[0], nil
}

// DigitalWrite sets the level of a digital pin.
func (d *Dev) DigitalWrite(pin, value byte) error {
	return d.command(cmdDigitalWrite, pin, value, 0)
}

// AnalogRead reads the 10-bit value of an analog pin.
func (d *Dev) AnalogRead(pin byte) (int, error) {
	var r [3]byte
	if err := d.query(cmdAnalogRead, pin, 0, 0, r[:]); err != nil {
		return 0, err
	}
	return int(r[1])<<8 | int(r[2]), nil
}

func (d *Dev) command(cmd, a, b, c byte) error {
	if err := d.dev.Tx([]byte{register, cmd, a, b, c}, nil); err != nil {
		return fmt.Errorf("grovepi: command %d: %w", cmd, err)
	}
	return nil
}

func (d *Dev) query(cmd, a, b, c byte, r []byte) error {
	if err := d.command(cmd, a, b, c); err != nil {
		return err
	}
	if d.Delay > 0 {
		time.Sleep(d.Delay)
	}
	if err := d.dev.Tx(nil, r); err != nil {
		return fmt.Errorf("grovepi: read reply of %d: %w", cmd, err)
	}
	return nil
}
