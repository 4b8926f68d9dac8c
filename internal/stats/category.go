// Package stats turns fbref tables into flat, team-tagged rows and combines
// them across teams.
package stats

import (
	"fmt"
	"time"

	"github.com/tyler180/nwsl-stats-backends/internal/fbref"
)

// Throttle is the uniform pause window between teams. Zero means no pause.
type Throttle struct {
	Min time.Duration
	Max time.Duration
}

// Enabled reports whether the pipeline should sleep between teams.
func (t Throttle) Enabled() bool { return t.Max > 0 }

// Category describes one statistical table and how its pipeline behaves.
type Category struct {
	Slug       string        // file name part: nwsl_<slug>_<season>.csv
	Label      string        // progress wording, e.g. "defensive stats"
	TableLabel string        // warning wording, e.g. "defensive stats table"
	Match      fbref.Matcher // picks the table id on the squad page
	Required   []string      // flattened columns every table must have
	Throttle   Throttle
}

// FileName is the CSV output name for a season.
func (c Category) FileName(season string) string {
	return fmt.Sprintf("nwsl_%s_%s.csv", c.Slug, season)
}

var (
	Defense = Category{
		Slug:       "defense",
		Label:      "defensive stats",
		TableLabel: "defensive stats table",
		Match:      fbref.Contains("stats_defense"),
		Required:   []string{"Player"},
	}

	Standard = Category{
		Slug:       "players",
		Label:      "player stats",
		TableLabel: "standard stats table",
		Match:      fbref.Contains("stats_standard"),
		Required:   []string{"Player"},
		Throttle:   Throttle{Min: 2 * time.Second, Max: 5 * time.Second},
	}
)

// Categories lists both pipelines in the order "all" runs them.
func Categories() []Category {
	return []Category{Defense, Standard}
}

// Lookup finds a category by slug ("defense", "players").
func Lookup(slug string) (Category, bool) {
	for _, c := range Categories() {
		if c.Slug == slug {
			return c, true
		}
	}
	return Category{}, false
}
