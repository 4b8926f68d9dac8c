package stats

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func standardFixture() *Table {
	return &Table{
		Columns: []string{"Rk_Rk", "Player", "Nation", "Pos", "Age", "Playing Time_Starts", "Playing Time_Min", "Performance_Gls", "Performance_Ast", "Expected_xG", "Expected_xAG", "Team"},
		Rows: []Row{
			{"Player": "Esther González", "Nation": "es ESP", "Pos": "FW", "Age": "32-150", "Playing Time_Starts": "24", "Playing Time_Min": "2,010", "Performance_Gls": "15", "Performance_Ast": "2", "Expected_xG": "12.4", "Expected_xAG": "1.9", "Team": "Gotham FC"},
			{"Player": "Rose Lavelle", "Nation": "us USA", "Pos": "MF", "Age": "30-010", "Playing Time_Starts": "", "Playing Time_Min": "640", "Performance_Gls": "1", "Team": "Gotham FC"},
			{"Player": "Squad Total", "Playing Time_Min": "23,400", "Performance_Gls": "40", "Team": "Gotham FC"},
			{"Player": "Opponent Total", "Performance_Gls": "31", "Team": "Gotham FC"},
			{"Player": "Racheal Kundananji", "Pos": "FW", "Performance_Gls": "5", "Team": "Bay FC"},
			{"Player": "", "Team": "Bay FC"},
		},
	}
}

func defenseFixture() *Table {
	return &Table{
		Columns: []string{"Player", "Tackles_Tkl", "Int", "Team"},
		Rows: []Row{
			{"Player": "Squad Total", "Tackles_Tkl": "400", "Int": "200", "Team": "Gotham FC"},
			{"Player": "Esther González", "Tackles_Tkl": "9", "Int": "3", "Team": "Gotham FC"},
			{"Player": "Racheal Kundananji", "Tackles_Tkl": "4", "Int": "1", "Team": "Seattle Reign"},
			{"Player": "Racheal Kundananji", "Tackles_Tkl": "7", "Int": "2", "Team": "Bay FC"},
		},
	}
}

func TestSquadProfiles(t *testing.T) {
	got := SquadProfiles(standardFixture(), defenseFixture(), "gotham fc")
	if len(got) != 2 {
		t.Fatalf("profiles = %+v", got)
	}
	want := PlayerProfile{
		Name: "Esther González", Nation: "es ESP", Position: "FW", Age: "32-150", Team: "Gotham FC",
		Goals: 15, Assists: 2, Starts: 24, Minutes: 2010, XG: 12.4, XA: 1.9, Tackles: 9, Interceptions: 3,
	}
	if got[0] != want {
		t.Fatalf("profile = %+v\nwant %+v", got[0], want)
	}
	// no defense row and blank cells count as zero
	if got[1].Name != "Rose Lavelle" || got[1].Starts != 0 || got[1].Tackles != 0 || got[1].Minutes != 640 {
		t.Fatalf("profile = %+v", got[1])
	}
}

func TestSquadProfiles_DefenseMatchesTeamFirst(t *testing.T) {
	got := SquadProfiles(standardFixture(), defenseFixture(), "Bay FC")
	if len(got) != 1 || got[0].Tackles != 7 || got[0].Interceptions != 2 {
		t.Fatalf("profiles = %+v", got)
	}

	// a player who moved keeps the first defense line found under any team
	std := &Table{Columns: []string{"Player", "Team"}, Rows: []Row{{"Player": "Racheal Kundananji", "Team": "Utah Royals"}}}
	got = SquadProfiles(std, defenseFixture(), "")
	if len(got) != 1 || got[0].Tackles != 4 {
		t.Fatalf("fallback profiles = %+v", got)
	}
}

func TestSquadProfiles_AllTeamsNilDefense(t *testing.T) {
	got := SquadProfiles(standardFixture(), nil, "")
	var names []string
	for _, p := range got {
		names = append(names, p.Name)
	}
	want := []string{"Esther González", "Rose Lavelle", "Racheal Kundananji"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %q", names)
	}
}

func TestFindProfile(t *testing.T) {
	ps := SquadProfiles(standardFixture(), defenseFixture(), "")
	if p, ok := FindProfile(ps, "  rose LAVELLE "); !ok || p.Team != "Gotham FC" {
		t.Fatalf("FindProfile = %+v, %v", p, ok)
	}
	if _, ok := FindProfile(ps, "Squad Total"); ok {
		t.Fatalf("totals must not be findable")
	}
}

func TestProfileTable(t *testing.T) {
	ps := SquadProfiles(standardFixture(), defenseFixture(), "Gotham FC")
	tbl := ProfileTable(ps)
	if tbl.Len() != 2 || len(tbl.Columns) != 13 {
		t.Fatalf("table = %d rows x %d cols", tbl.Len(), len(tbl.Columns))
	}
	if got := tbl.Values(0); got[8] != "2010" || got[9] != "12.4" || got[12] != "3" {
		t.Fatalf("values = %q", got)
	}
}

func TestCompareTable(t *testing.T) {
	ps := SquadProfiles(standardFixture(), defenseFixture(), "")
	a, _ := FindProfile(ps, "Esther González")
	b, _ := FindProfile(ps, "Racheal Kundananji")
	tbl := CompareTable(a, b)
	if !reflect.DeepEqual(tbl.Columns, []string{"Stat", "Esther González", "Racheal Kundananji"}) {
		t.Fatalf("columns = %q", tbl.Columns)
	}
	if tbl.Len() != 13 {
		t.Fatalf("rows = %d", tbl.Len())
	}
	if got := tbl.Values(5); !reflect.DeepEqual(got, []string{"Gls", "15", "5"}) {
		t.Fatalf("goals row = %q", got)
	}

	same := CompareTable(a, a)
	if same.Columns[1] == same.Columns[2] {
		t.Fatalf("duplicate column labels: %q", same.Columns)
	}
}

func TestPreviewAll(t *testing.T) {
	ps := SquadProfiles(standardFixture(), defenseFixture(), "Gotham FC")
	var buf bytes.Buffer
	if err := PreviewAll(&buf, ProfileTable(ps)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "...") || !strings.Contains(out, "xAG") || !strings.Contains(out, "[2 rows x 13 columns]") {
		t.Fatalf("output = %q", out)
	}
}
