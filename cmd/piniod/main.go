package main

//go-build: CGO_ENABLED=0

import (
	"flag"

	"github.com/robotalks/pinio.go/pkg/daemon"
)

func init() {
	daemon.SetupFlags()
}

func main() {
	flag.Parse()
	daemon.NewConfig().MustNewDaemon().RunOrFail()
}
