package stats

import (
	"strconv"
	"strings"
)

// Flattened column names the profile join reads.
const (
	colNation        = "Nation"
	colPos           = "Pos"
	colAge           = "Age"
	colGoals         = "Performance_Gls"
	colAssists       = "Performance_Ast"
	colStarts        = "Playing Time_Starts"
	colMinutes       = "Playing Time_Min"
	colXG            = "Expected_xG"
	colXAG           = "Expected_xAG"
	colTackles       = "Tackles_Tkl"
	colInterceptions = "Int"
)

// PlayerProfile is one player's standard line joined with their defensive
// line. Missing or non-numeric cells count as zero.
type PlayerProfile struct {
	Name     string
	Nation   string
	Position string
	Age      string
	Team     string

	Goals         float64
	Assists       float64
	Starts        float64
	Minutes       float64
	XG            float64
	XA            float64
	Tackles       float64
	Interceptions float64
}

// SquadProfiles builds a profile for every player row of standard whose Team
// matches team (case-insensitive; "" matches all teams). Blank names and
// footer totals are skipped. Defensive numbers come from the defense row for
// the same player and team, falling back to the first row with that name.
func SquadProfiles(standard, defense *Table, team string) []PlayerProfile {
	byTeam := map[[2]string]Row{}
	byName := map[string]Row{}
	if defense != nil {
		for _, r := range defense.Rows {
			name := strings.TrimSpace(r["Player"])
			if name == "" || IsTotal(name) {
				continue
			}
			k := [2]string{name, r[TeamColumn]}
			if _, ok := byTeam[k]; !ok {
				byTeam[k] = r
			}
			if _, ok := byName[name]; !ok {
				byName[name] = r
			}
		}
	}

	var out []PlayerProfile
	for _, r := range standard.Rows {
		name := strings.TrimSpace(r["Player"])
		if name == "" || IsTotal(name) {
			continue
		}
		if team != "" && !strings.EqualFold(r[TeamColumn], team) {
			continue
		}
		def, ok := byTeam[[2]string{name, r[TeamColumn]}]
		if !ok {
			def = byName[name]
		}
		out = append(out, PlayerProfile{
			Name:          name,
			Nation:        r[colNation],
			Position:      r[colPos],
			Age:           r[colAge],
			Team:          r[TeamColumn],
			Goals:         num(r, colGoals),
			Assists:       num(r, colAssists),
			Starts:        num(r, colStarts),
			Minutes:       num(r, colMinutes),
			XG:            num(r, colXG),
			XA:            num(r, colXAG),
			Tackles:       num(def, colTackles),
			Interceptions: num(def, colInterceptions),
		})
	}
	return out
}

// FindProfile looks a player up by name, ignoring case and surrounding space.
func FindProfile(profiles []PlayerProfile, name string) (PlayerProfile, bool) {
	name = strings.TrimSpace(name)
	for _, p := range profiles {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return PlayerProfile{}, false
}

var profileColumns = []string{"Player", "Nation", "Pos", "Age", TeamColumn, "Gls", "Ast", "Starts", "Min", "xG", "xAG", "Tkl", "Int"}

func (p PlayerProfile) values() []string {
	return []string{
		p.Name, p.Nation, p.Position, p.Age, p.Team,
		fmtNum(p.Goals), fmtNum(p.Assists), fmtNum(p.Starts), fmtNum(p.Minutes),
		fmtNum(p.XG), fmtNum(p.XA), fmtNum(p.Tackles), fmtNum(p.Interceptions),
	}
}

// ProfileTable lays profiles out one per row.
func ProfileTable(profiles []PlayerProfile) *Table {
	t := &Table{Columns: append([]string(nil), profileColumns...)}
	for _, p := range profiles {
		row := make(Row, len(profileColumns))
		for i, v := range p.values() {
			row[profileColumns[i]] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// CompareTable puts two profiles side by side, one row per field. Columns are
// headed by player name, with the team added when the names collide.
func CompareTable(a, b PlayerProfile) *Table {
	la, lb := a.Name, b.Name
	if strings.EqualFold(la, lb) {
		la, lb = la+" ("+a.Team+")", lb+" ("+b.Team+")"
		if la == lb {
			lb += " [2]"
		}
	}
	t := &Table{Columns: []string{"Stat", la, lb}}
	va, vb := a.values(), b.values()
	for i, c := range profileColumns {
		t.Rows = append(t.Rows, Row{"Stat": c, la: va[i], lb: vb[i]})
	}
	return t
}

func num(r Row, col string) float64 {
	if r == nil {
		return 0
	}
	f, _ := r.Float(col)
	return f
}

func fmtNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
