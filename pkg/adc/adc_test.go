package adc

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/conntest"
)

func TestReadRaw(t *testing.T) {
	c := &conntest.Playback{
		Ops: []conntest.IO{
			{W: []byte{0x01, 0x80, 0x00}, R: []byte{0xff, 0xf8, 0x00}},
			{W: []byte{0x01, 0xc0, 0x00}, R: []byte{0x00, 0x01, 0x23}},
			{W: []byte{0x01, 0x40, 0x00}, R: []byte{0x00, 0x00, 0x07}},
		},
		DontPanic: true,
	}
	a := New(c)
	v, err := a.ReadRaw(1, SingleEnded)
	require.NoError(t, err)
	require.Equal(t, 0x800, v)
	v, err = a.ReadRaw(2, SingleEnded)
	require.NoError(t, err)
	require.Equal(t, 0x123, v)
	v, err = a.ReadRaw(2, Differential)
	require.NoError(t, err)
	require.Equal(t, 7, v)
	require.NoError(t, c.Close())

	_, err = a.ReadRaw(3, SingleEnded)
	require.Error(t, err)
}

func TestReadVoltage(t *testing.T) {
	c := &conntest.Playback{
		Ops:       []conntest.IO{{W: []byte{0x01, 0x80, 0x00}, R: []byte{0x00, 0x0f, 0xff}}},
		DontPanic: true,
	}
	v, err := New(c).ReadVoltage(1, SingleEnded)
	require.NoError(t, err)
	require.InDelta(t, 3.3*4095/4096, v, 1e-9)
}

func fakeClock(ticks ...time.Time) func() time.Time {
	return func() time.Time {
		t := ticks[0]
		ticks = ticks[1:]
		return t
	}
}

func samples(n int, r []byte) []conntest.IO {
	ops := make([]conntest.IO, n)
	for i := range ops {
		ops[i] = conntest.IO{W: []byte{0x01, 0x80, 0x00}, R: r}
	}
	return ops
}

func TestBenchmark(t *testing.T) {
	c := &conntest.Playback{Ops: samples(4, []byte{0, 0x08, 0x00}), DontPanic: true}
	t0 := time.Now()
	b := &Benchmark{
		ADC:     New(c),
		Samples: 4,
		Channel: 1,
		Mode:    SingleEnded,
		Voltage: true,
		Clock:   fakeClock(t0, t0.Add(2*time.Millisecond)),
	}
	res, err := b.Run()
	require.NoError(t, err)
	require.NoError(t, c.Close())
	require.Equal(t, 4, res.Samples)
	require.Equal(t, 2*time.Millisecond, res.Elapsed)
	require.InDelta(t, 2.0, res.Rate(), 1e-9)

	var out bytes.Buffer
	res.Print(&out)
	require.Equal(t, "SAMPLES=4 (2.00 ms)\nSAMPLING RATE=2.00 ksps\nAVERAGE VOLTAGE=1.65 v\n", out.String())
}

func TestBenchmarkRaw(t *testing.T) {
	c := &conntest.Playback{Ops: samples(240, []byte{0, 0x01, 0x00}), DontPanic: true}
	conf := NewConfig()
	conf.Raw = true
	b := conf.NewBenchmark(New(c))
	res, err := b.Run()
	require.NoError(t, err)
	require.NoError(t, c.Close())
	require.Equal(t, 240, res.Samples)
	require.Equal(t, 256.0, res.Average)

	var out bytes.Buffer
	res.Print(&out)
	require.Contains(t, out.String(), "AVERAGE VALUE=256\n")
}

func TestBenchmarkError(t *testing.T) {
	c := &conntest.Playback{Ops: samples(1, []byte{0, 0, 0}), DontPanic: true}
	b := &Benchmark{ADC: New(c), Samples: 2, Channel: 1}
	_, err := b.Run()
	require.Error(t, err)

	b.Samples = 0
	_, err = b.Run()
	require.Error(t, err)
}

type recordPublisher struct {
	values map[string]float64
	units  map[string]string
}

func (p *recordPublisher) Publish(ctx context.Context, sensor string, value float64, unit string) error {
	p.values[sensor] = value
	p.units[sensor] = unit
	return nil
}

func (p *recordPublisher) Close() error { return nil }

func TestResultPublish(t *testing.T) {
	pub := &recordPublisher{values: make(map[string]float64), units: make(map[string]string)}
	res := Result{Samples: 10, Elapsed: 5 * time.Millisecond, Average: 1.5, Voltage: true}
	require.NoError(t, res.Publish(context.Background(), pub))
	require.Equal(t, map[string]float64{"adc.average": 1.5, "adc.rate": 2}, pub.values)
	require.Equal(t, "V", pub.units["adc.average"])
	require.Equal(t, "ksps", pub.units["adc.rate"])
}
