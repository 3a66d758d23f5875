package grovepi

import (
	"testing"

	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func newTestDev(ops ...i2ctest.IO) (*Dev, *i2ctest.Playback) {
	bus := &i2ctest.Playback{Ops: ops, DontPanic: true}
	d := New(bus)
	d.Delay = 0
	return d, bus
}

func TestVersion(t *testing.T) {
	d, bus := newTestDev(
		i2ctest.IO{Addr: Addr, W: []byte{1, 8, 0, 0, 0}},
		i2ctest.IO{Addr: Addr, R: []byte{8, 1, 2, 7}},
	)
	v, err := d.Version()
	require.NoError(t, err)
	require.Equal(t, "1.2.7", v.String())
	require.NoError(t, bus.Close())
}

func TestDigitalPins(t *testing.T) {
	d, bus := newTestDev(
		i2ctest.IO{Addr: Addr, W: []byte{1, 5, 2, 0, 0}},
		i2ctest.IO{Addr: Addr, W: []byte{1, 1, 2, 0, 0}},
		i2ctest.IO{Addr: Addr, R: []byte{1}},
		i2ctest.IO{Addr: Addr, W: []byte{1, 2, 4, 1, 0}},
	)
	require.NoError(t, d.PinMode(2, Input))
	v, err := d.DigitalRead(2)
	require.NoError(t, err)
	require.Equal(t, byte(1), v)
	require.NoError(t, d.DigitalWrite(4, 1))
	require.NoError(t, bus.Close())
}

func TestAnalogRead(t *testing.T) {
	d, bus := newTestDev(
		i2ctest.IO{Addr: Addr, W: []byte{1, 3, 0, 0, 0}},
		i2ctest.IO{Addr: Addr, R: []byte{3, 0x02, 0x9a}},
	)
	v, err := d.AnalogRead(0)
	require.NoError(t, err)
	require.Equal(t, 0x29a, v)
	require.NoError(t, bus.Close())
}

func TestBusError(t *testing.T) {
	d, _ := newTestDev()
	_, err := d.DigitalRead(2)
	require.Error(t, err)
}
