package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tyler180/nwsl-stats-backends/internal/config"
	"github.com/tyler180/nwsl-stats-backends/internal/pipeline"
	"github.com/tyler180/nwsl-stats-backends/internal/stats"
)

const page = `<html><body>
<table id="stats_standard_9"><thead>
<tr><th rowspan="2">Rk</th><th></th><th colspan="1">Playing Time</th></tr>
<tr><th>Player</th><th>MP</th></tr>
</thead><tbody>
<tr><td>1</td><th>Ana</th><td>9</td></tr>
</tbody></table>
<!--
<table id="stats_defense_9"><thead>
<tr><th rowspan="2">Rk</th><th></th><th>Tackles</th></tr>
<tr><th>Player</th><th>Tkl</th></tr>
</thead><tbody>
<tr><td>1</td><th>Ana</th><td>4</td></tr>
</tbody></table>
-->
</body></html>`

func testConfig(t *testing.T, srvURL string) config.Config {
	t.Helper()
	dir := t.TempDir()
	teamsFile := filepath.Join(dir, "teams.yaml")
	body := fmt.Sprintf("teams:\n  - name: Alpha FC\n    url: %s/a\n  - name: Beta FC\n    url: %s/b\n", srvURL, srvURL)
	if err := os.WriteFile(teamsFile, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return config.Config{
		Season:      "2025",
		OutputDir:   dir,
		TeamsFile:   teamsFile,
		HTTPTimeout: 5 * time.Second,
		DelayMinMS:  -1,
		DelayMaxMS:  -1,
		S3Prefix:    "nwsl",
	}
}

func TestRun_AllCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/a" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, page)
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	var slept int
	reports, err := Run(context.Background(), cfg, stats.Categories(), Deps{
		Out:   io.Discard,
		Sleep: func(context.Context, time.Duration) error { slept++; return nil },
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("reports = %d", len(reports))
	}
	for _, rep := range reports {
		if !rep.Written() || rep.Rows != 1 {
			t.Errorf("%s: %+v", rep.Category, rep)
		}
	}
	for _, name := range []string{"nwsl_defense_2025.csv", "nwsl_players_2025.csv"} {
		if _, err := os.Stat(filepath.Join(cfg.OutputDir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	// players pauses once, after Alpha FC; defense never pauses
	if slept != 1 {
		t.Errorf("slept = %d, want 1", slept)
	}
}

func TestSinks(t *testing.T) {
	cl := &Clients{}
	cases := []struct {
		name    string
		cfg     config.Config
		clients *Clients
		want    []string
		wantErr bool
	}{
		{"none", config.Config{}, nil, nil, false},
		{"parquet only", config.Config{Parquet: true}, nil, []string{"parquet"}, false},
		{"everything", config.Config{Parquet: true, S3Bucket: "b", TableName: "t", AthenaDB: "d"}, cl, []string{"parquet", "s3", "dynamodb", "athena"}, false},
		{"athena without s3", config.Config{AthenaDB: "d"}, cl, nil, true},
		{"aws without clients", config.Config{TableName: "t"}, nil, nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sinks, err := Sinks(tc.cfg, tc.clients, nil)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(sinks) != len(tc.want) {
				t.Fatalf("sinks = %v", names(sinks))
			}
			for i, s := range sinks {
				if s.Name() != tc.want[i] {
					t.Fatalf("sinks = %v, want %v", names(sinks), tc.want)
				}
			}
		})
	}
}

func names(sinks []pipeline.Sink) []string {
	out := make([]string, len(sinks))
	for i, s := range sinks {
		out[i] = s.Name()
	}
	return out
}

func TestRun_UnknownTeamList(t *testing.T) {
	cfg := config.Config{TeamList: "Nobody", DelayMinMS: -1, DelayMaxMS: -1}
	if _, err := Run(context.Background(), cfg, stats.Categories(), Deps{Out: io.Discard}); err == nil {
		t.Fatalf("expected error")
	}
}
