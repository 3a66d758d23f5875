package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"log"

	"github.com/robotalks/foundation.go/pkg/echo"
)

func init() {
	echo.SetupClientFlags()
}

func main() {
	flag.Parse()

	conf := echo.NewClientConfig()
	conf.Server = flag.Arg(0)
	if err := conf.NewClient().Run(context.Background()); err != nil {
		log.Fatalln(err)
	}
}
