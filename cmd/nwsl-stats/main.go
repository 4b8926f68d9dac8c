package main

import (
	"os"

	"github.com/tyler180/nwsl-stats-backends/internal/cli"
)

func main() { os.Exit(cli.Execute()) }
