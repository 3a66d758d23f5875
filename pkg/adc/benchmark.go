package adc

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/robotalks/foundation.go/pkg/telemetry"
)

// Benchmark samples an ADC channel repeatedly and measures the rate.
type Benchmark struct {
	ADC     *ADC
	Samples int
	Channel int
	Mode    Mode
	// Voltage averages voltages instead of raw values.
	Voltage bool
	// Clock is time.Now if nil.
	Clock func() time.Time
}

// Result is the result of a Benchmark.
type Result struct {
	Samples int
	Elapsed time.Duration
	Average float64
	Voltage bool
}

// Run samples the channel Samples times.
func (b *Benchmark) Run() (Result, error) {
	clock := b.Clock
	if clock == nil {
		clock = time.Now
	}
	res := Result{Samples: b.Samples, Voltage: b.Voltage}
	if b.Samples <= 0 {
		return res, fmt.Errorf("invalid number of samples %d", b.Samples)
	}
	var sum float64
	start := clock()
	for i := 0; i < b.Samples; i++ {
		var val float64
		if b.Voltage {
			v, err := b.ADC.ReadVoltage(b.Channel, b.Mode)
			if err != nil {
				return res, err
			}
			val = v
		} else {
			raw, err := b.ADC.ReadRaw(b.Channel, b.Mode)
			if err != nil {
				return res, err
			}
			val = float64(raw)
		}
		sum += val
	}
	res.Elapsed = clock().Sub(start)
	res.Average = sum / float64(b.Samples)
	return res, nil
}

// ElapsedMillis returns the elapsed time in milliseconds.
func (r Result) ElapsedMillis() float64 {
	return float64(r.Elapsed) / float64(time.Millisecond)
}

// Rate returns the sampling rate in ksps.
func (r Result) Rate() float64 {
	ms := r.ElapsedMillis()
	if ms <= 0 {
		return 0
	}
	return float64(r.Samples) / ms
}

// Print writes the report.
func (r Result) Print(w io.Writer) {
	fmt.Fprintf(w, "SAMPLES=%d (%.2f ms)\n", r.Samples, r.ElapsedMillis())
	fmt.Fprintf(w, "SAMPLING RATE=%.2f ksps\n", r.Rate())
	if r.Voltage {
		fmt.Fprintf(w, "AVERAGE VOLTAGE=%.2f v\n", r.Average)
	} else {
		fmt.Fprintf(w, "AVERAGE VALUE=%.0f\n", r.Average)
	}
}

// Publish publishes the average and the rate.
func (r Result) Publish(ctx context.Context, pub telemetry.Publisher) error {
	unit := ""
	if r.Voltage {
		unit = "V"
	}
	if err := pub.Publish(ctx, "adc.average", r.Average, unit); err != nil {
		return err
	}
	return pub.Publish(ctx, "adc.rate", r.Rate(), "ksps")
}
