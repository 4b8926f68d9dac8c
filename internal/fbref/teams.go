package fbref

import (
	"strings"
)

// Team is one NWSL club and the fbref squad page its stats are read from.
type Team struct {
	Name string `yaml:"name"` // display name written to the Team column
	URL  string `yaml:"url"`  // e.g. https://fbref.com/en/squads/257fad2b/Seattle-Reign-FC-Stats
}

// AllTeams returns the canonical registry in scrape order.
// fbref squad ids are stable across seasons; the page always shows the current one.
func AllTeams() []Team {
	return []Team{
		{Name: "Seattle Reign FC", URL: "https://fbref.com/en/squads/257fad2b/Seattle-Reign-FC-Stats"},
		{Name: "Portland Thorns", URL: "https://fbref.com/en/squads/df9a10a1/Portland-Thorns-FC-Stats"},
		{Name: "Washington Spirit", URL: "https://fbref.com/en/squads/e442aad0/Washington-Spirit-Stats"},
		{Name: "KC Current", URL: "https://fbref.com/en/squads/6f666306/Kansas-City-Current-Stats"},
		{Name: "San Diego Wave", URL: "https://fbref.com/en/squads/bf961da0/San-Diego-Wave-Stats"},
		{Name: "Orlando Pride", URL: "https://fbref.com/en/squads/2a6178ac/Orlando-Pride-Stats"},
		{Name: "Racing Louisville", URL: "https://fbref.com/en/squads/da19ebd1/Racing-Louisville-Stats"},
		{Name: "Gotham FC", URL: "https://fbref.com/en/squads/8e306dc6/Gotham-FC-Stats"},
		{Name: "North Carolina Courage", URL: "https://fbref.com/en/squads/85c458aa/North-Carolina-Courage-Stats"},
		{Name: "Angel City FC", URL: "https://fbref.com/en/squads/ae38d267/Angel-City-FC-Stats"},
		{Name: "Houston Dash", URL: "https://fbref.com/en/squads/e813709a/Houston-Dash-Stats"},
		{Name: "Bay FC", URL: "https://fbref.com/en/squads/231a532f/Bay-FC-Stats"},
		{Name: "Chicago Red Stars", URL: "https://fbref.com/en/squads/d976a235/Chicago-Red-Stars-Stats"},
		{Name: "Utah Royals FC", URL: "https://fbref.com/en/squads/d4c130bc/Utah-Royals-Stats"},
	}
}

// Names returns the team names in registry order.
func Names(teams []Team) []string {
	out := make([]string, 0, len(teams))
	for _, t := range teams {
		out = append(out, t.Name)
	}
	return out
}

// Subset keeps the teams named in teamListCSV (case-insensitive), in registry order.
// An empty list selects every team.
func Subset(all []Team, teamListCSV string) []Team {
	if strings.TrimSpace(teamListCSV) == "" {
		return append([]Team(nil), all...)
	}
	want := map[string]struct{}{}
	for _, tok := range strings.Split(teamListCSV, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" {
			want[tok] = struct{}{}
		}
	}
	out := make([]Team, 0, len(want))
	for _, t := range all {
		if _, ok := want[strings.ToLower(t.Name)]; ok {
			out = append(out, t)
		}
	}
	return out
}
