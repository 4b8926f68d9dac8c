package stats

import "errors"

// ErrNoData means no team contributed any table to a run.
var ErrNoData = errors.New("no data scraped")

// Accumulator concatenates per-team tables in the order they are added.
// Columns are the union by name in first-seen order.
type Accumulator struct {
	columns []string
	index   map[string]struct{}
	first   map[string]struct{}
	rows    []Row
	teams   []string
	counts  map[string]int
}

func NewAccumulator() *Accumulator {
	return &Accumulator{
		index:  map[string]struct{}{},
		counts: map[string]int{},
	}
}

// Add appends t under team. drift is true when t's column set differs from the
// first table added.
func (a *Accumulator) Add(team string, t *Table) (drift bool) {
	cols := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		cols[c] = struct{}{}
		if _, ok := a.index[c]; !ok {
			a.index[c] = struct{}{}
			a.columns = append(a.columns, c)
		}
	}
	if a.first == nil {
		a.first = cols
	} else {
		drift = !sameSet(a.first, cols)
	}

	a.rows = append(a.rows, t.Rows...)
	if _, seen := a.counts[team]; !seen {
		a.teams = append(a.teams, team)
	}
	a.counts[team] += len(t.Rows)
	return drift
}

// Len is the total number of rows added.
func (a *Accumulator) Len() int { return len(a.rows) }

// Empty reports whether no table was added.
func (a *Accumulator) Empty() bool { return len(a.teams) == 0 }

// Teams lists contributing teams in insertion order.
func (a *Accumulator) Teams() []string { return append([]string(nil), a.teams...) }

// Count is the number of rows team contributed.
func (a *Accumulator) Count(team string) int { return a.counts[team] }

// Combined returns the concatenated table, or ErrNoData if nothing was added.
func (a *Accumulator) Combined() (*Table, error) {
	if a.Empty() {
		return nil, ErrNoData
	}
	return &Table{
		Columns: append([]string(nil), a.columns...),
		Rows:    append([]Row(nil), a.rows...),
	}, nil
}

func sameSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
