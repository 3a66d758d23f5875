package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	"github.com/robotalks/foundation.go/pkg/echo"
	fx "github.com/robotalks/foundation.go/pkg/framework"
)

func init() {
	echo.SetupFlags()
}

func main() {
	flag.Parse()

	srv := echo.NewConfig().NewServer()
	if err := fx.NewRunner().HandleSignals().Go(srv).Wait(); err != nil {
		log.Fatalln(err)
	}
}
