package fbref

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RawTable is the text content of one matched <table>.
// Header holds one slice per header level, all the same width, with colspan and
// rowspan already expanded. Rows holds body and footer rows in document order.
type RawTable struct {
	ID     string
	Header [][]string
	Rows   [][]string
}

// Width is the number of header columns.
func (t *RawTable) Width() int {
	if len(t.Header) == 0 {
		return 0
	}
	return len(t.Header[0])
}

type gridCell struct {
	text string
	set  bool
}

func span(s *goquery.Selection, attr string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s.AttrOr(attr, "1")))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func cellText(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

// ParseTable extracts header levels and data rows from a table selection.
func ParseTable(table *goquery.Selection) *RawTable {
	out := &RawTable{ID: table.AttrOr("id", "")}

	sections := table.ChildrenFiltered("tbody, tfoot")
	bodyRows := sections.ChildrenFiltered("tr")

	headRows := table.ChildrenFiltered("thead").ChildrenFiltered("tr")
	if headRows.Length() == 0 {
		// no thead: the first row made only of <th> is the header
		first := bodyRows.First()
		cells := first.ChildrenFiltered("th,td")
		if cells.Length() > 0 && cells.Length() == first.ChildrenFiltered("th").Length() {
			headRows = first
			bodyRows = bodyRows.Slice(1, bodyRows.Length())
		}
	}

	out.Header = headerGrid(headRows)

	bodyRows.Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("th,td")
		if cells.Length() == 0 {
			return
		}
		row := make([]string, 0, cells.Length())
		cells.Each(func(_ int, c *goquery.Selection) {
			txt := cellText(c)
			for i := 0; i < span(c, "colspan"); i++ {
				row = append(row, txt)
			}
		})
		out.Rows = append(out.Rows, row)
	})
	return out
}

func headerGrid(rows *goquery.Selection) [][]string {
	var grid [][]gridCell
	ensure := func(r, c int) {
		for len(grid) <= r {
			grid = append(grid, nil)
		}
		for len(grid[r]) <= c {
			grid[r] = append(grid[r], gridCell{})
		}
	}

	rows.Each(func(r int, tr *goquery.Selection) {
		ensure(r, 0)
		c := 0
		tr.ChildrenFiltered("th,td").Each(func(_ int, cell *goquery.Selection) {
			for c < len(grid[r]) && grid[r][c].set {
				c++
			}
			txt := cellText(cell)
			cs, rs := span(cell, "colspan"), span(cell, "rowspan")
			if rs > rows.Length()-r {
				rs = rows.Length() - r
			}
			for dr := 0; dr < rs; dr++ {
				for dc := 0; dc < cs; dc++ {
					ensure(r+dr, c+dc)
					grid[r+dr][c+dc] = gridCell{text: txt, set: true}
				}
			}
			c += cs
		})
	})

	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	out := make([][]string, 0, len(grid))
	for _, row := range grid {
		level := make([]string, width)
		for i, cell := range row {
			level[i] = cell.text
		}
		out = append(out, level)
	}
	return out
}
