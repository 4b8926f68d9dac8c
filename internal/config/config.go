// Package config reads run settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tyler180/nwsl-stats-backends/internal/fbref"
	"github.com/tyler180/nwsl-stats-backends/internal/stats"
)

type Config struct {
	Season      string
	OutputDir   string
	TeamList    string // comma-separated subset of team names
	TeamsFile   string // YAML registry override
	HTTPTimeout time.Duration
	DelayMinMS  int // -1 keeps the category default
	DelayMaxMS  int
	PreviewRows int
	Parquet     bool

	S3Bucket string
	S3Prefix string

	TableName string // DynamoDB

	AthenaDB        string
	AthenaWorkgroup string
	AthenaOutput    string

	Debug bool
}

func FromEnv() Config {
	return Config{
		Season:          envStr("SEASON", "2025"),
		OutputDir:       envStr("OUTPUT_DIR", "."),
		TeamList:        envStr("TEAM_LIST", ""),
		TeamsFile:       envStr("TEAMS_FILE", ""),
		HTTPTimeout:     time.Duration(envInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		DelayMinMS:      envInt("TEAM_DELAY_MIN_MS", -1),
		DelayMaxMS:      envInt("TEAM_DELAY_MAX_MS", -1),
		PreviewRows:     envInt("PREVIEW_ROWS", 5),
		Parquet:         envBool("PARQUET", false),
		S3Bucket:        envStr("S3_BUCKET", ""),
		S3Prefix:        envStr("S3_PREFIX", "nwsl"),
		TableName:       envStr("TABLE_NAME", ""),
		AthenaDB:        envStr("ATHENA_DB", ""),
		AthenaWorkgroup: envStr("ATHENA_WORKGROUP", "primary"),
		AthenaOutput:    envStr("ATHENA_OUTPUT", ""),
		Debug:           envBool("DEBUG", false),
	}
}

// Throttle applies TEAM_DELAY_MIN_MS/TEAM_DELAY_MAX_MS over the category's
// default. Setting only one bound uses it for both.
func (c Config) Throttle(cat stats.Category) stats.Throttle {
	lo, hi := c.DelayMinMS, c.DelayMaxMS
	if lo < 0 && hi < 0 {
		return cat.Throttle
	}
	if lo < 0 {
		lo = hi
	}
	if hi < 0 {
		hi = lo
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return stats.Throttle{
		Min: time.Duration(lo) * time.Millisecond,
		Max: time.Duration(hi) * time.Millisecond,
	}
}

// Teams resolves the registry (built-in or TEAMS_FILE) and applies TEAM_LIST.
func (c Config) Teams() ([]fbref.Team, error) {
	all := fbref.AllTeams()
	if c.TeamsFile != "" {
		loaded, err := LoadTeamsFile(c.TeamsFile)
		if err != nil {
			return nil, err
		}
		all = loaded
	}
	teams := fbref.Subset(all, c.TeamList)
	if len(teams) == 0 {
		return nil, fmt.Errorf("TEAM_LIST %q matches no team (known: %s)", c.TeamList, strings.Join(fbref.Names(all), ", "))
	}
	return teams, nil
}

type teamsFile struct {
	Teams []fbref.Team `yaml:"teams"`
}

// LoadTeamsFile reads a registry of the form:
//
//	teams:
//	  - name: Gotham FC
//	    url: https://fbref.com/en/squads/8e306dc6/Gotham-FC-Stats
func LoadTeamsFile(path string) ([]fbref.Team, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read teams file: %w", err)
	}
	var tf teamsFile
	if err := yaml.Unmarshal(b, &tf); err != nil {
		return nil, fmt.Errorf("parse teams file %s: %w", path, err)
	}
	if len(tf.Teams) == 0 {
		return nil, errors.New("teams file has no teams")
	}
	seen := map[string]struct{}{}
	for i, t := range tf.Teams {
		if strings.TrimSpace(t.Name) == "" || strings.TrimSpace(t.URL) == "" {
			return nil, fmt.Errorf("teams file entry %d: name and url are required", i)
		}
		if _, dup := seen[t.Name]; dup {
			return nil, fmt.Errorf("teams file: duplicate team %q", t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	return tf.Teams, nil
}

// NewLogger returns a text logger; debug lowers the level to Debug.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	lvl := slog.LevelInfo
	if debug {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func envStr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(k))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return def
	}
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
