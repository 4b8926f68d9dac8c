// Command nwsl-players writes nwsl_players_<season>.csv from every squad's
// standard stats table, pausing a few seconds between teams.
package main

import (
	"os"

	"github.com/tyler180/nwsl-stats-backends/internal/cli"
	"github.com/tyler180/nwsl-stats-backends/internal/stats"
)

func main() { os.Exit(cli.RunCategory(stats.Standard)) }
