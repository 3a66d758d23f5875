// Package telemetry optionally publishes sensor readings to an MQTT broker.
//
// Each reading is a pb.Sample published to topic
//
//	<prefix><device-id>/<sensor>
package telemetry

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/foundation.go/pkg/telemetry/mqtt"
	"github.com/robotalks/foundation.go/pkg/telemetry/pb"
)

// Publisher publishes readings.
type Publisher interface {
	Publish(ctx context.Context, sensor string, value float64, unit string) error
	Close() error
}

// Config provides options to create a Publisher.
type Config struct {
	// BrokerURL specifies the MQTT broker to publish to, e.g.
	// mqtt://host:port/topic-prefix/. Publishing is disabled if empty.
	BrokerURL string
	// DeviceID identifies the device in topics, machine ID by default.
	DeviceID       string
	ConnectTimeout time.Duration
}

var defaultConfig = Config{
	ConnectTimeout: 5 * time.Second,
}

func init() {
	if val := os.Getenv("FOUNDATION_MQTT_URL"); val != "" {
		defaultConfig.BrokerURL = val
	}
	if val := os.Getenv("FOUNDATION_DEVICE_ID"); val != "" {
		defaultConfig.DeviceID = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.BrokerURL, "mqtt", defaultConfig.BrokerURL, "MQTT broker URL to publish readings, empty to disable.")
	flag.StringVar(&defaultConfig.DeviceID, "device-id", defaultConfig.DeviceID, "Device ID in topics, machine ID if empty.")
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

// MachineID retrieves the unique ID identifying the machine.
func MachineID() (string, error) {
	return machineid.ID()
}

// NewPublisher creates a Publisher from the config. A Nop publisher is
// returned when BrokerURL is empty.
func (c *Config) NewPublisher() (Publisher, error) {
	if c.BrokerURL == "" {
		return Nop{}, nil
	}
	deviceID := c.DeviceID
	if deviceID == "" {
		id, err := MachineID()
		if err != nil {
			return nil, fmt.Errorf("machine id: %w", err)
		}
		deviceID = id
	}
	q, err := mqtt.NewQueueFromURL(c.BrokerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid MQTT URL: %w", err)
	}
	if err = q.Connect(c.ConnectTimeout); err != nil {
		return nil, fmt.Errorf("connect MQTT broker error: %w", err)
	}
	return &MQTTPublisher{Queue: q, DeviceID: deviceID}, nil
}

// Nop discards all readings.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, string, float64, string) error { return nil }

// Close implements Publisher.
func (Nop) Close() error { return nil }

// MQTTPublisher publishes readings to MQTT.
type MQTTPublisher struct {
	Queue    *mqtt.Queue
	DeviceID string
	// Now is used for timestamps, time.Now if nil.
	Now func() time.Time
}

// Topic returns the topic relative to queue prefix for the sensor.
func (p *MQTTPublisher) Topic(sensor string) string {
	return p.DeviceID + "/" + sensor
}

// Publish implements Publisher.
func (p *MQTTPublisher) Publish(ctx context.Context, sensor string, value float64, unit string) error {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	payload, err := Encode(&pb.Sample{
		Sensor:       sensor,
		DeviceId:     p.DeviceID,
		TimeUnixNano: now().UnixNano(),
		Value:        value,
		Unit:         unit,
	})
	if err != nil {
		return err
	}
	token := p.Queue.Pub(p.Topic(sensor), payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err = token.Error(); err != nil {
		glog.Warningf("publish %s: %v", sensor, err)
	}
	return err
}

// Close implements Publisher.
func (p *MQTTPublisher) Close() error {
	return p.Queue.Close()
}

// Encode encodes a sample into bytes.
func Encode(s *pb.Sample) ([]byte, error) {
	return proto.Marshal(s)
}

// Decode decodes a sample from bytes.
func Decode(data []byte) (*pb.Sample, error) {
	var s pb.Sample
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Format prints a sample in a single line for logs.
func Format(s *pb.Sample) string {
	ts := time.Unix(0, s.TimeUnixNano).Format("15:04:05.000")
	return strings.TrimSpace(fmt.Sprintf("%s %s %s=%g %s", ts, s.DeviceId, s.Sensor, s.Value, s.Unit))
}
