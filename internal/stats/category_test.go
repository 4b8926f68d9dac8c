package stats

import (
	"testing"
	"time"
)

func TestCategories(t *testing.T) {
	if got := Defense.FileName("2025"); got != "nwsl_defense_2025.csv" {
		t.Errorf("defense file = %q", got)
	}
	if got := Standard.FileName("2025"); got != "nwsl_players_2025.csv" {
		t.Errorf("players file = %q", got)
	}
	if Defense.Throttle.Enabled() {
		t.Errorf("defense must not throttle")
	}
	if !Standard.Throttle.Enabled() || Standard.Throttle.Min != 2*time.Second || Standard.Throttle.Max != 5*time.Second {
		t.Errorf("players throttle = %+v", Standard.Throttle)
	}
	if !Defense.Match.Match("stats_defense_10090") || Standard.Match.Match("stats_defense_10090") {
		t.Errorf("matchers crossed")
	}
	if c, ok := Lookup("players"); !ok || c.Slug != "players" {
		t.Errorf("Lookup(players) = %v %v", c, ok)
	}
	if _, ok := Lookup("keepers"); ok {
		t.Errorf("Lookup(keepers) should fail")
	}
}
