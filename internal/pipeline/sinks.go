package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tyler180/nwsl-stats-backends/internal/ath"
	"github.com/tyler180/nwsl-stats-backends/internal/materializer"
	"github.com/tyler180/nwsl-stats-backends/internal/stats"
	"github.com/tyler180/nwsl-stats-backends/internal/store"
)

// Sink is an extra destination for the combined table.
type Sink interface {
	Name() string
	Write(ctx context.Context, cat stats.Category, season string, t *stats.Table) error
}

// runSinks tries every sink even when an earlier one fails.
func runSinks(ctx context.Context, log *slog.Logger, opts Options, rep *Report, t *stats.Table) error {
	if len(opts.Sinks) == 0 {
		return nil
	}
	rep.Sinks = make(map[string]error, len(opts.Sinks))
	var errs []error
	for _, s := range opts.Sinks {
		err := s.Write(ctx, opts.Category, opts.Season, t)
		rep.Sinks[s.Name()] = err
		if err != nil {
			log.Error("sink failed", "sink", s.Name(), "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}
		log.Info("sink done", "sink", s.Name())
	}
	return errors.Join(errs...)
}

func baseName(cat stats.Category, season string) string {
	return strings.TrimSuffix(cat.FileName(season), ".csv")
}

// ParquetFileSink writes <name>.parquet next to the CSV.
type ParquetFileSink struct {
	Dir string
}

func (ParquetFileSink) Name() string { return "parquet" }

func (p ParquetFileSink) Write(_ context.Context, cat stats.Category, season string, t *stats.Table) error {
	name := baseName(cat, season)
	path := filepath.Join(p.Dir, name+".parquet")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := store.WriteParquet(f, name, t); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// S3Sink uploads the CSV (and optionally a Parquet copy under <dataset>_parquet).
type S3Sink struct {
	Uploader *store.S3Uploader
	Parquet  bool
}

func (S3Sink) Name() string { return "s3" }

func (s S3Sink) Write(ctx context.Context, cat stats.Category, season string, t *stats.Table) error {
	body, err := store.CSVBytes(t)
	if err != nil {
		return err
	}
	if err := s.Uploader.Put(ctx, s.Uploader.Key(cat.Slug, season, cat.FileName(season)), "text/csv", body); err != nil {
		return err
	}
	if !s.Parquet {
		return nil
	}
	name := baseName(cat, season)
	pq, err := store.ParquetBytes(name, t)
	if err != nil {
		return err
	}
	return s.Uploader.Put(ctx, s.Uploader.Key(cat.Slug+"_parquet", season, name+".parquet"), "application/vnd.apache.parquet", pq)
}

// DynamoSink upserts one item per player row.
type DynamoSink struct {
	Client store.DynamoDBAPI
	Table  string
	Logger *slog.Logger
}

func (DynamoSink) Name() string { return "dynamodb" }

func (d DynamoSink) Write(ctx context.Context, cat stats.Category, season string, t *stats.Table) error {
	n, err := store.PutStatRows(ctx, d.Client, d.Table, season, cat, t)
	if err != nil {
		return err
	}
	if d.Logger != nil {
		d.Logger.Info("dynamodb rows written", "table", d.Table, "items", n)
	}
	return nil
}

// AthenaSink (re)registers the uploaded CSV as an external table. It must run
// after S3Sink.
type AthenaSink struct {
	Runner   *ath.Runner
	Uploader *store.S3Uploader
}

func (AthenaSink) Name() string { return "athena" }

func (a AthenaSink) Write(ctx context.Context, cat stats.Category, season string, t *stats.Table) error {
	db := a.Runner.Database
	table := materializer.TableName(cat.Slug, season)
	log := a.Runner.Logger
	if log == nil {
		log = slog.Default()
	}

	// best effort: a missing table is fine
	if _, err := a.Runner.ExecAndWait(ctx, materializer.BuildDrop(db, table)); err != nil {
		log.Warn("drop table failed", "table", table, "err", err)
	}
	ddl := materializer.BuildExternalTable(db, table, stats.ColumnKeys(t.Columns), a.Uploader.Location(cat.Slug, season))
	if _, err := a.Runner.ExecAndWait(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	n, err := a.Runner.CountRows(ctx, materializer.QualifiedName(db, table))
	if err != nil {
		return fmt.Errorf("count %s: %w", table, err)
	}
	if n != int64(t.Len()) {
		log.Warn("athena row count differs from csv", "table", table, "athena", n, "csv", t.Len())
	}
	return nil
}
