package pir

import (
	"fmt"
	"io"

	"github.com/golang/glog"

	fx "github.com/robotalks/foundation.go/pkg/framework"
	"github.com/robotalks/foundation.go/pkg/telemetry"
)

// DigitalReader reads a digital pin.
type DigitalReader interface {
	DigitalRead(pin byte) (byte, error)
}

// Sensor reads the motion state in every loop iteration:
// 0 = nothing detected, 1 = motion detected.
type Sensor struct {
	Reader    DigitalReader
	Pin       byte
	Publisher telemetry.Publisher
	Output    io.Writer

	value byte
	fresh bool
}

// AddToLoop implements LoopAdder.
func (s *Sensor) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvSense, fx.ControlFunc(s.sense))
	if s.Publisher != nil {
		loop.AddController(fx.PrLvPostProc, fx.ControlFunc(s.publish))
	}
}

// Value returns the last reading.
func (s *Sensor) Value() byte {
	return s.value
}

func (s *Sensor) sense(cc fx.ControlContext) error {
	s.fresh = false
	v, err := s.Reader.DigitalRead(s.Pin)
	if err != nil {
		return err
	}
	if v != s.value {
		glog.V(1).Infof("motion state %d -> %d", s.value, v)
	}
	s.value, s.fresh = v, true
	if s.Output != nil {
		fmt.Fprintf(s.Output, "Digital read %d\n", v)
	}
	return nil
}

func (s *Sensor) publish(cc fx.ControlContext) error {
	if !s.fresh {
		return nil
	}
	return s.Publisher.Publish(cc.Context(), SensorName, float64(s.value), "")
}
