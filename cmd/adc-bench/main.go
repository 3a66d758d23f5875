package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"log"

	"github.com/robotalks/foundation.go/pkg/adc"
	"github.com/robotalks/foundation.go/pkg/telemetry"
)

func init() {
	adc.SetupFlags()
	telemetry.SetupFlags()
}

func main() {
	flag.Parse()

	conf := adc.NewConfig()
	a, port, err := conf.Open()
	if err != nil {
		log.Fatalln(err)
	}
	defer port.Close()

	res, err := conf.NewBenchmark(a).Run()
	if err != nil {
		log.Fatalln(err)
	}
	res.Print(conf.Output)

	pub, err := telemetry.NewConfig().NewPublisher()
	if err != nil {
		log.Fatalln(err)
	}
	defer pub.Close()
	if err = res.Publish(context.Background(), pub); err != nil {
		log.Println(err)
	}
}
