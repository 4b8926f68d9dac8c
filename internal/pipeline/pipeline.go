// Package pipeline runs one stat category across the team registry: fetch each
// squad page, extract the table, clean it, combine and persist the result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/tyler180/nwsl-stats-backends/internal/fbref"
	"github.com/tyler180/nwsl-stats-backends/internal/stats"
	"github.com/tyler180/nwsl-stats-backends/internal/store"
)

type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*fbref.Page, error)
}

type Options struct {
	Category    stats.Category
	Teams       []fbref.Team
	Season      string
	OutputDir   string
	Fetcher     PageFetcher
	Throttle    stats.Throttle
	PreviewRows int
	Sinks       []Sink // run in order after the CSV is written

	Out    io.Writer // preview destination; os.Stdout when nil
	Logger *slog.Logger

	// test hooks
	Sleep func(ctx context.Context, d time.Duration) error
	Rand  func() float64
}

// Outcome classifies what happened to one team.
type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeNetwork   Outcome = "network_error"
	OutcomeStatus    Outcome = "bad_status"
	OutcomeNoTable   Outcome = "missing_table"
	OutcomeMalformed Outcome = "schema_mismatch"
)

type TeamResult struct {
	Team    string
	Outcome Outcome
	Status  int // HTTP status, 0 on transport errors
	Rows    int
	Err     error
}

type Report struct {
	Category string
	Season   string
	Teams    []TeamResult
	Rows     int
	Columns  int
	Path     string // CSV path; empty when nothing was written
	Drift    []string
	Sinks    map[string]error
}

// Written reports whether the CSV was produced.
func (r *Report) Written() bool { return r.Path != "" }

// Succeeded counts teams that contributed a table.
func (r *Report) Succeeded() int {
	n := 0
	for _, t := range r.Teams {
		if t.Outcome == OutcomeOK {
			n++
		}
	}
	return n
}

// Run processes the teams sequentially. Per-team failures are logged and
// recorded in the report; they never stop the run. The returned error is
// non-nil only for cancellation, a failed CSV write, or failed sinks.
func Run(ctx context.Context, opts Options) (*Report, error) {
	opts = withDefaults(opts)
	log := opts.Logger.With("category", opts.Category.Slug)
	cat := opts.Category

	rep := &Report{Category: cat.Slug, Season: opts.Season}
	acc := stats.NewAccumulator()

	for i, team := range opts.Teams {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		log.Info("scraping "+cat.Label, "team", team.Name)

		res, tbl := scrapeTeam(ctx, opts, log, team)
		if res.Err != nil && ctx.Err() != nil {
			return rep, ctx.Err()
		}
		if tbl != nil {
			if acc.Add(team.Name, tbl) {
				log.Warn("schema drift: columns differ from first team", "team", team.Name)
				rep.Drift = append(rep.Drift, team.Name)
			}
		}
		rep.Teams = append(rep.Teams, res)

		if res.Outcome == OutcomeOK && opts.Throttle.Enabled() && i < len(opts.Teams)-1 {
			d := pause(opts.Throttle, opts.Rand)
			log.Info(fmt.Sprintf("sleeping for %.2f seconds", d.Seconds()))
			if err := opts.Sleep(ctx, d); err != nil {
				return rep, err
			}
		}
	}

	combined, err := acc.Combined()
	if errors.Is(err, stats.ErrNoData) {
		log.Warn("no " + cat.Label + " scraped")
		return rep, nil
	}
	if err != nil {
		return rep, err
	}
	rep.Rows = combined.Len()
	rep.Columns = len(combined.Columns)

	if opts.PreviewRows > 0 {
		if err := stats.Preview(opts.Out, combined, opts.PreviewRows); err != nil {
			log.Warn("preview failed", "err", err)
		}
	}

	path := filepath.Join(opts.OutputDir, cat.FileName(opts.Season))
	if err := store.WriteCSV(path, combined); err != nil {
		return rep, fmt.Errorf("save %s: %w", cat.Slug, err)
	}
	rep.Path = path
	log.Info("saved "+cat.Label, "path", path, "rows", rep.Rows, "teams", len(acc.Teams()))

	return rep, runSinks(ctx, log, opts, rep, combined)
}

func scrapeTeam(ctx context.Context, opts Options, log *slog.Logger, team fbref.Team) (TeamResult, *stats.Table) {
	res := TeamResult{Team: team.Name}
	cat := opts.Category

	page, err := opts.Fetcher.Fetch(ctx, team.URL)
	if err != nil {
		res.Outcome, res.Err = OutcomeNetwork, err
		log.Warn("fetch failed", "team", team.Name, "err", err)
		return res, nil
	}
	res.Status = page.StatusCode
	if !page.OK() {
		res.Outcome = OutcomeStatus
		res.Err = fmt.Errorf("status %d", page.StatusCode)
		log.Warn("failed to retrieve team", "team", team.Name, "status", page.StatusCode)
		return res, nil
	}

	doc, err := fbref.ParseDocument(page.Body)
	if err != nil {
		res.Outcome, res.Err = OutcomeMalformed, err
		log.Warn("unparseable page", "team", team.Name, "err", err)
		return res, nil
	}
	sel, err := fbref.FindTable(doc, cat.Match)
	if err != nil {
		res.Outcome, res.Err = OutcomeNoTable, err
		log.Warn("no "+cat.TableLabel+" found", "team", team.Name)
		fbref.DumpTables(log, doc, team.Name)
		return res, nil
	}

	tbl, err := stats.Flatten(fbref.ParseTable(sel), cat)
	if err != nil {
		res.Outcome, res.Err = OutcomeMalformed, err
		log.Warn("skipping malformed table", "team", team.Name, "err", err)
		return res, nil
	}
	tbl.Rows = stats.Sanitize(tbl.Rows, stats.RankColumn(tbl.Columns))
	stats.Tag(tbl, team.Name)

	res.Outcome = OutcomeOK
	res.Rows = tbl.Len()
	log.Debug("team table", "team", team.Name, "rows", res.Rows, "columns", len(tbl.Columns))
	return res, tbl
}

// pause draws a uniform delay in [Min, Max).
func pause(t stats.Throttle, rnd func() float64) time.Duration {
	if t.Max <= t.Min {
		return t.Min
	}
	return t.Min + time.Duration(rnd()*float64(t.Max-t.Min))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func withDefaults(o Options) Options {
	if o.Fetcher == nil {
		o.Fetcher = fbref.NewFetcher(fbref.DefaultTimeout)
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Sleep == nil {
		o.Sleep = sleepCtx
	}
	if o.Rand == nil {
		o.Rand = rand.Float64
	}
	if o.OutputDir == "" {
		o.OutputDir = "."
	}
	if o.Season == "" {
		o.Season = "2025"
	}
	if o.Teams == nil {
		o.Teams = fbref.AllTeams()
	}
	return o
}
