package stats

import (
	"fmt"
	"strings"
	"unicode"
)

// SnakeName lowercases a flattened column and folds everything that is not a
// letter or digit into single underscores: "Playing Time_MP" -> "playing_time_mp",
// "Tkl+Int" -> "tkl_int", "Def 3rd" -> "def_3rd".
func SnakeName(col string) string {
	var sb strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(col) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && sb.Len() > 0 {
				sb.WriteByte('_')
			}
			pendingSep = false
			sb.WriteRune(r)
			continue
		}
		if r == '%' {
			if sb.Len() > 0 {
				sb.WriteByte('_')
			}
			sb.WriteString("pct")
			pendingSep = false
			continue
		}
		pendingSep = true
	}
	if sb.Len() == 0 {
		return "col"
	}
	s := sb.String()
	if unicode.IsDigit(rune(s[0])) {
		s = "c_" + s
	}
	return s
}

// ColumnKeys maps columns to unique snake_case names for Parquet and Athena.
// A clash gets the next free numeric suffix.
func ColumnKeys(cols []string) []string {
	out := make([]string, len(cols))
	taken := make(map[string]struct{}, len(cols))
	next := map[string]int{}
	for i, c := range cols {
		base := SnakeName(c)
		k := base
		for {
			if _, dup := taken[k]; !dup {
				break
			}
			next[base]++
			k = fmt.Sprintf("%s_%d", base, next[base])
		}
		taken[k] = struct{}{}
		out[i] = k
	}
	return out
}
