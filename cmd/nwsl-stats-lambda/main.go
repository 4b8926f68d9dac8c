package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/tyler180/nwsl-stats-backends/internal/app"
	"github.com/tyler180/nwsl-stats-backends/internal/config"
	"github.com/tyler180/nwsl-stats-backends/internal/pipeline"
	"github.com/tyler180/nwsl-stats-backends/internal/stats"
)

type Event struct {
	Mode     string `json:"mode"`      // defense | players | all
	TeamList string `json:"team_list"` // optional; overrides TEAM_LIST
	Season   string `json:"season"`    // optional; overrides SEASON
}

type CategoryResult struct {
	Category    string   `json:"category"`
	Rows        int      `json:"rows"`
	TeamsOK     int      `json:"teams_ok"`
	TeamsFailed []string `json:"teams_failed,omitempty"`
	Written     bool     `json:"written"`
}

type Response struct {
	OK      bool             `json:"ok"`
	Season  string           `json:"season"`
	Results []CategoryResult `json:"results"`
	Message string           `json:"message,omitempty"`
}

func main() {
	log.SetFlags(0)
	lambda.Start(handler)
}

func categoriesFor(mode string) ([]stats.Category, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "all":
		return stats.Categories(), nil
	default:
		cat, ok := stats.Lookup(strings.ToLower(strings.TrimSpace(mode)))
		if !ok {
			return nil, fmt.Errorf("unknown mode %q", mode)
		}
		return []stats.Category{cat}, nil
	}
}

// decodeEvent accepts an empty payload as the default "all" run.
func decodeEvent(raw json.RawMessage) (Event, error) {
	var e Event
	if len(bytes.TrimSpace(raw)) == 0 {
		return e, nil
	}
	if err := json.Unmarshal(raw, &e); err != nil {
		return e, fmt.Errorf("decode event: %w", err)
	}
	return e, nil
}

func handler(ctx context.Context, raw json.RawMessage) (*Response, error) {
	e, err := decodeEvent(raw)
	if err != nil {
		return nil, err
	}

	cfg := config.FromEnv()
	if e.TeamList != "" {
		cfg.TeamList = e.TeamList
	}
	if e.Season != "" {
		cfg.Season = e.Season
	}
	// only /tmp is writable in Lambda
	if os.Getenv("OUTPUT_DIR") == "" {
		cfg.OutputDir = os.TempDir()
	}
	cats, err := categoriesFor(e.Mode)
	if err != nil {
		return nil, err
	}

	lvl := slog.LevelInfo
	if cfg.Debug {
		lvl = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))

	reports, runErr := app.Run(ctx, cfg, cats, app.Deps{Out: io.Discard, Logger: logger})
	resp := &Response{OK: runErr == nil, Season: cfg.Season, Results: summarize(reports)}
	if runErr != nil {
		resp.Message = runErr.Error()
	}
	return resp, runErr
}

func summarize(reports []*pipeline.Report) []CategoryResult {
	out := make([]CategoryResult, 0, len(reports))
	for _, r := range reports {
		cr := CategoryResult{Category: r.Category, Rows: r.Rows, TeamsOK: r.Succeeded(), Written: r.Written()}
		for _, t := range r.Teams {
			if t.Outcome != pipeline.OutcomeOK {
				cr.TeamsFailed = append(cr.TeamsFailed, t.Team)
			}
		}
		out = append(out, cr)
	}
	return out
}
