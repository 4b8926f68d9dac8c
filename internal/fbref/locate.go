package fbref

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrTableNotFound means no <table> id satisfied the matcher.
var ErrTableNotFound = errors.New("stats table not found")

// Matcher decides whether a table id is the one we want.
type Matcher struct {
	Kind  string // "contains", "prefix" or "exact"
	Value string
}

func Contains(s string) Matcher  { return Matcher{Kind: "contains", Value: s} }
func HasPrefix(s string) Matcher { return Matcher{Kind: "prefix", Value: s} }
func Exact(s string) Matcher     { return Matcher{Kind: "exact", Value: s} }

// Match reports whether id satisfies m. Empty ids never match.
func (m Matcher) Match(id string) bool {
	if id == "" {
		return false
	}
	switch m.Kind {
	case "prefix":
		return strings.HasPrefix(id, m.Value)
	case "exact":
		return id == m.Value
	default:
		return strings.Contains(id, m.Value)
	}
}

func (m Matcher) String() string {
	return fmt.Sprintf("%s(%q)", m.Kind, m.Value)
}

// decomment exposes tables fbref ships inside <!-- --> blocks.
func decomment(html string) string {
	clean := strings.ReplaceAll(html, "<!--", "")
	return strings.ReplaceAll(clean, "-->", "")
}

// ParseDocument parses page markup with comment markers removed.
func ParseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(decomment(html)))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// FindTable returns the first table in document order whose id satisfies m.
func FindTable(doc *goquery.Document, m Matcher) (*goquery.Selection, error) {
	var chosen *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		if m.Match(t.AttrOr("id", "")) {
			chosen = t
			return false
		}
		return true
	})
	if chosen == nil {
		return nil, fmt.Errorf("%w: id %s", ErrTableNotFound, m)
	}
	return chosen, nil
}

// DumpTables logs every table id and its first header row at debug level.
func DumpTables(logger *slog.Logger, doc *goquery.Document, team string) {
	doc.Find("table").Each(func(i int, t *goquery.Selection) {
		var heads []string
		t.Find("thead tr").Last().Find("th,td").Each(func(_ int, h *goquery.Selection) {
			if txt := strings.TrimSpace(h.Text()); txt != "" {
				heads = append(heads, txt)
			}
		})
		logger.Debug("table on page",
			"team", team,
			"index", i,
			"id", t.AttrOr("id", ""),
			"headers", strings.Join(heads, "|"))
	})
}
