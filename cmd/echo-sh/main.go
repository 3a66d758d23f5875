package main

import (
	"github.com/robotalks/foundation.go/pkg/cli/sh"
	"github.com/robotalks/foundation.go/pkg/echo"
)

//go-build: CGO_ENABLED=0

func init() {
	echo.SetupClientFlags()
}

func main() {
	sh.Main()
}
