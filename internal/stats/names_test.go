package stats

import (
	"reflect"
	"testing"
)

func TestSnakeName(t *testing.T) {
	cases := map[string]string{
		"Playing Time_MP": "playing_time_mp",
		"Tkl+Int":         "tkl_int",
		"Def 3rd":         "def_3rd",
		"Tkl%":            "tkl_pct",
		"Rk_Rk":           "rk_rk",
		"90s":             "c_90s",
		"Per 90_Gls.1":    "per_90_gls_1",
		"":                "col",
		"%":               "pct",
	}
	for in, want := range cases {
		if got := SnakeName(in); got != want {
			t.Errorf("SnakeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestColumnKeys(t *testing.T) {
	cases := []struct {
		cols []string
		want []string
	}{
		{[]string{"Tkl+Int", "Tkl Int", "Tkl-Int", "Player"}, []string{"tkl_int", "tkl_int_1", "tkl_int_2", "player"}},
		{[]string{"Def 3rd", "Def_3rd", "Def 3rd_1"}, []string{"def_3rd", "def_3rd_1", "def_3rd_1_1"}},
		{[]string{"A_1", "A", "A"}, []string{"a_1", "a", "a_2"}},
	}
	for _, tc := range cases {
		got := ColumnKeys(tc.cols)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ColumnKeys(%q) = %v, want %v", tc.cols, got, tc.want)
		}
		seen := map[string]bool{}
		for _, k := range got {
			if seen[k] {
				t.Errorf("ColumnKeys(%q) repeats %q", tc.cols, k)
			}
			seen[k] = true
		}
	}
}
