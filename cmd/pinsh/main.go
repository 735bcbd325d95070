package main

//go-build: CGO_ENABLED=0

import (
	"github.com/robotalks/pinio.go/pkg/host/sh"
)

func main() {
	sh.Main()
}
