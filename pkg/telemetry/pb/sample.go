// Package pb contains the wire messages of telemetry, see sample.proto.
package pb

import (
	"github.com/golang/protobuf/proto"
)

// Sample is a single sensor reading.
type Sample struct {
	Sensor       string  `protobuf:"bytes,1,opt,name=sensor,proto3" json:"sensor,omitempty"`
	DeviceId     string  `protobuf:"bytes,2,opt,name=device_id,json=deviceId,proto3" json:"device_id,omitempty"`
	TimeUnixNano int64   `protobuf:"varint,3,opt,name=time_unix_nano,json=timeUnixNano,proto3" json:"time_unix_nano,omitempty"`
	Value        float64 `protobuf:"fixed64,4,opt,name=value,proto3" json:"value,omitempty"`
	Unit         string  `protobuf:"bytes,5,opt,name=unit,proto3" json:"unit,omitempty"`
}

// Reset implements proto.Message.
func (m *Sample) Reset() { *m = Sample{} }

// String implements proto.Message.
func (m *Sample) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*Sample) ProtoMessage() {}

func init() {
	proto.RegisterType((*Sample)(nil), "foundation.telemetry.v1.Sample")
}
