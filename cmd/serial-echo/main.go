package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	fx "github.com/robotalks/foundation.go/pkg/framework"
	"github.com/robotalks/foundation.go/pkg/uart"
)

func init() {
	uart.SetupFlags()
}

func main() {
	flag.Parse()

	conf := uart.NewConfig()
	port, err := conf.Open()
	if err != nil {
		log.Fatalln(err)
	}
	if err = fx.NewRunner().HandleSignals().Go(conf.NewEcho(port)).Wait(); err != nil {
		log.Fatalln(err)
	}
}
