package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tyler180/nwsl-stats-backends/internal/app"
	"github.com/tyler180/nwsl-stats-backends/internal/config"
	"github.com/tyler180/nwsl-stats-backends/internal/stats"
	"github.com/tyler180/nwsl-stats-backends/internal/store"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

type options struct {
	cfg        config.Config
	timeoutSec int
	verbose    bool
	out        io.Writer
	deps       app.Deps
}

// NewRootCmd builds the command tree. Flag defaults come from the environment.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{cfg: config.FromEnv(), out: os.Stdout})
}

func newRootCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nwsl-stats",
		Short: "Scrape NWSL squad stats from fbref into CSV",
		Long: `nwsl-stats fetches every NWSL squad page on fbref, extracts the defensive
or standard player stats table, tags each row with its team and writes one
combined CSV per category (nwsl_<category>_<season>.csv).

Optional outputs: Parquet, S3, DynamoDB and an Athena external table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Flags().Changed("timeout") {
				o.cfg.HTTPTimeout = time.Duration(o.timeoutSec) * time.Second
			}
			if o.verbose {
				o.cfg.Debug = true
			}
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&o.cfg.Season, "season", o.cfg.Season, "season used in output file names (env SEASON)")
	f.StringVarP(&o.cfg.OutputDir, "output-dir", "o", o.cfg.OutputDir, "directory for output files (env OUTPUT_DIR)")
	f.StringVar(&o.cfg.TeamList, "teams", o.cfg.TeamList, "comma-separated team names to scrape (env TEAM_LIST)")
	f.StringVar(&o.cfg.TeamsFile, "teams-file", o.cfg.TeamsFile, "YAML team registry override (env TEAMS_FILE)")
	f.IntVar(&o.timeoutSec, "timeout", int(o.cfg.HTTPTimeout/time.Second), "HTTP timeout in seconds (env HTTP_TIMEOUT_SECONDS)")
	f.IntVar(&o.cfg.PreviewRows, "preview", o.cfg.PreviewRows, "rows to print before saving, 0 to disable (env PREVIEW_ROWS)")
	f.BoolVar(&o.cfg.Parquet, "parquet", o.cfg.Parquet, "also write Parquet (env PARQUET)")
	f.StringVar(&o.cfg.S3Bucket, "s3-bucket", o.cfg.S3Bucket, "upload outputs to this bucket (env S3_BUCKET)")
	f.StringVar(&o.cfg.S3Prefix, "s3-prefix", o.cfg.S3Prefix, "key prefix for uploads (env S3_PREFIX)")
	f.StringVar(&o.cfg.TableName, "table", o.cfg.TableName, "DynamoDB table for rows (env TABLE_NAME)")
	f.StringVar(&o.cfg.AthenaDB, "athena-db", o.cfg.AthenaDB, "register uploads in this Athena database (env ATHENA_DB)")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging (env DEBUG)")

	cmd.AddCommand(
		newScrapeCmd(o, "defense", "Scrape defensive stats for every team", stats.Defense),
		newScrapeCmd(o, "players", "Scrape standard player stats for every team", stats.Standard),
		newScrapeCmd(o, "all", "Scrape defense, then players", stats.Categories()...),
		newTeamsCmd(o),
		newRosterCmd(o),
		newCompareCmd(o),
		newShowCmd(o),
	)
	return cmd
}

func newScrapeCmd(o *options, use, short string, cats ...stats.Category) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := o.deps
			d.Out = o.out
			_, err := app.Run(cmd.Context(), o.cfg, cats, d)
			return err
		},
	}
}

func newTeamsCmd(o *options) *cobra.Command {
	var registry bool
	var category string
	cmd := &cobra.Command{
		Use:   "teams [csv]",
		Short: "List the teams present in a written CSV",
		Long: `List the distinct Team values of a CSV written by this tool, skipping
squad and opponent total rows. Defaults to the players CSV for --season
in --output-dir. With --registry, print the configured team registry instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if registry {
				teams, err := o.cfg.Teams()
				if err != nil {
					return err
				}
				for _, t := range teams {
					fmt.Fprintf(o.out, "%s\t%s\n", t.Name, t.URL)
				}
				return nil
			}

			cat, ok := stats.Lookup(category)
			if !ok {
				return fmt.Errorf("unknown category %q (defense, players)", category)
			}
			path := filepath.Join(o.cfg.OutputDir, cat.FileName(o.cfg.Season))
			if len(args) == 1 {
				path = args[0]
			}
			t, err := store.ReadCSV(path)
			if err != nil {
				return err
			}
			for _, name := range store.DistinctTeams(t) {
				fmt.Fprintln(o.out, name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&registry, "registry", false, "print the team registry instead of reading a CSV")
	cmd.Flags().StringVarP(&category, "category", "c", stats.Standard.Slug, "category whose CSV to read")
	return cmd
}

// loadProfiles joins the season's players CSV with its defense CSV. A missing
// defense file leaves tackles and interceptions at zero.
func loadProfiles(o *options, team string) ([]stats.PlayerProfile, error) {
	std, err := store.ReadCSV(filepath.Join(o.cfg.OutputDir, stats.Standard.FileName(o.cfg.Season)))
	if err != nil {
		return nil, err
	}
	def, err := store.ReadCSV(filepath.Join(o.cfg.OutputDir, stats.Defense.FileName(o.cfg.Season)))
	if errors.Is(err, fs.ErrNotExist) {
		def = nil
	} else if err != nil {
		return nil, err
	}
	return stats.SquadProfiles(std, def, team), nil
}

func newRosterCmd(o *options) *cobra.Command {
	var team string
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Print one team's players with standard and defensive stats",
		Long: `Join the players and defense CSVs for --season in --output-dir and print
goals, assists, starts, minutes, xG, xAG, tackles and interceptions for every
player of --team. Squad and opponent total rows are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := loadProfiles(o, team)
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				fmt.Fprintf(o.out, "no players for %s in %s\n", team, o.cfg.Season)
				return nil
			}
			return stats.PreviewAll(o.out, stats.ProfileTable(profiles))
		},
	}
	cmd.Flags().StringVar(&team, "team", "", "team name as written in the Team column")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}

func newCompareCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <player1> <player2>",
		Short: "Compare two players side by side",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := loadProfiles(o, "")
			if err != nil {
				return err
			}
			var pair [2]stats.PlayerProfile
			var missing []string
			for i, name := range args {
				p, ok := stats.FindProfile(profiles, name)
				if !ok {
					missing = append(missing, fmt.Sprintf("%q", name))
				}
				pair[i] = p
			}
			if len(missing) > 0 {
				return fmt.Errorf("player not found: %s", strings.Join(missing, ", "))
			}
			return stats.PreviewAll(o.out, stats.CompareTable(pair[0], pair[1]))
		},
	}
}

func newShowCmd(o *options) *cobra.Command {
	var team, category string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the rows stored in DynamoDB for one team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.cfg.TableName == "" {
				return errors.New("--table (or TABLE_NAME) is required")
			}
			if _, ok := stats.Lookup(category); !ok {
				return fmt.Errorf("unknown category %q (defense, players)", category)
			}
			clients := o.deps.Clients
			if clients == nil {
				var err error
				if clients, err = app.NewClients(cmd.Context()); err != nil {
					return err
				}
			}
			t, err := store.QueryTeamRows(cmd.Context(), clients.DDB, o.cfg.TableName, o.cfg.Season, team, category)
			if err != nil {
				return fmt.Errorf("query %s: %w", team, err)
			}
			if t.Len() == 0 {
				fmt.Fprintf(o.out, "no %s rows for %s in %s\n", category, team, o.cfg.Season)
				return nil
			}
			return stats.Preview(o.out, t, t.Len())
		},
	}
	cmd.Flags().StringVar(&team, "team", "", "team name as written in the Team column")
	cmd.Flags().StringVarP(&category, "category", "c", stats.Defense.Slug, "defense or players")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}

// Execute runs the CLI with SIGINT/SIGTERM cancellation and returns the exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return ExitError
	}
	return ExitSuccess
}

// RunCategory is the flagless entry used by cmd/nwsl-defense and cmd/nwsl-players.
func RunCategory(cat stats.Category) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if _, err := app.Run(ctx, config.FromEnv(), []stats.Category{cat}, app.Deps{}); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return ExitError
	}
	return ExitSuccess
}
