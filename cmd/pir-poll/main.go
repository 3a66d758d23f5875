package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	"github.com/robotalks/foundation.go/pkg/grovepi"
	"github.com/robotalks/foundation.go/pkg/pir"
	"github.com/robotalks/foundation.go/pkg/telemetry"
)

func init() {
	pir.SetupFlags()
	telemetry.SetupFlags()
}

func main() {
	flag.Parse()

	conf := pir.NewConfig()
	bus, err := conf.OpenBus()
	if err != nil {
		log.Fatalln(err)
	}
	defer bus.Close()
	board := grovepi.New(bus)
	if err = pir.Setup(board, conf.Pin, conf.Output); err != nil {
		log.Fatalln(err)
	}

	pub, err := telemetry.NewConfig().NewPublisher()
	if err != nil {
		log.Fatalln(err)
	}
	defer pub.Close()

	conf.NewLoop(conf.NewSensor(board, pub)).RunOrFail()
}
