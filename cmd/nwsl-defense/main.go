// Command nwsl-defense writes nwsl_defense_<season>.csv from every squad's
// defensive actions table. Settings come from the environment only.
package main

import (
	"os"

	"github.com/tyler180/nwsl-stats-backends/internal/cli"
	"github.com/tyler180/nwsl-stats-backends/internal/stats"
)

func main() { os.Exit(cli.RunCategory(stats.Defense)) }
