package pir

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/robotalks/foundation.go/pkg/grovepi"
)

type scriptedReader struct {
	values []byte
	pins   []byte
}

var errNoData = errors.New("no data")

func (r *scriptedReader) DigitalRead(pin byte) (byte, error) {
	r.pins = append(r.pins, pin)
	if len(r.values) == 0 {
		return 0, errNoData
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v, nil
}

type recordPublisher struct {
	values []float64
}

func (p *recordPublisher) Publish(ctx context.Context, sensor string, value float64, unit string) error {
	if sensor != SensorName {
		return errors.New("unexpected sensor " + sensor)
	}
	p.values = append(p.values, value)
	return nil
}

func (p *recordPublisher) Close() error { return nil }

func TestSensorPolls(t *testing.T) {
	reader := &scriptedReader{values: []byte{0, 1, 1}}
	pub := &recordPublisher{}
	var out bytes.Buffer
	conf := NewConfig()
	conf.Output = &out
	conf.Interval = time.Millisecond
	s := &Sensor{Reader: reader, Pin: 2, Publisher: pub, Output: &out}
	loop := conf.NewLoop(s)
	loop.Iterations = 4
	require.NoError(t, loop.Run(context.Background()))

	require.Equal(t, "Digital read 0\nDigital read 1\nDigital read 1\n", out.String())
	require.Equal(t, []float64{0, 1, 1}, pub.values)
	require.Equal(t, []byte{2, 2, 2, 2}, reader.pins)
	require.Equal(t, byte(1), s.Value())
}

func TestSetup(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: grovepi.Addr, W: []byte{1, 8, 0, 0, 0}},
			{Addr: grovepi.Addr, R: []byte{8, 1, 3, 0}},
			{Addr: grovepi.Addr, W: []byte{1, 5, 2, 0, 0}},
		},
		DontPanic: true,
	}
	board := grovepi.New(bus)
	board.Delay = 0
	var out bytes.Buffer
	require.NoError(t, Setup(board, 2, &out))
	require.Equal(t, "Version: 1.3.0\n", out.String())
	require.NoError(t, bus.Close())
}
