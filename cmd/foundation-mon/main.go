package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/robotalks/foundation.go/pkg/telemetry"
	"github.com/robotalks/foundation.go/pkg/telemetry/mqtt"
)

//go-build: CGO_ENABLED=0

var (
	mqttURL = "mqtt://localhost:1883/foundation/"
	topic   = "#"
)

func init() {
	if val := os.Getenv("FOUNDATION_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&topic, "topic", topic, "Topic pattern to subscribe, relative to the URL prefix.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	q.Sub(topic, func(topic string, payload []byte) {
		sample, err := telemetry.Decode(payload)
		if err != nil {
			log.Printf("%s: bad sample: %v", topic, err)
			return
		}
		log.Printf("%s: %s", topic, telemetry.Format(sample))
	})
	if err = q.Connect(10 * time.Second); err != nil {
		log.Fatalln(err)
	}
	<-(chan struct{})(nil)
}
