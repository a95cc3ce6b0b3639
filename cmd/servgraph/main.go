package main

import (
	"github.com/klothoplatform/servgraph/pkg/cli"
)

// Version is set at build time with `-ldflags "-X main.Version=..."`.
var Version = "0.0.0-local"

func main() {
	sm := cli.ServgraphMain{
		Version: Version,
	}

	sm.Main()
}
