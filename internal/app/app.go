// Package app wires configuration, AWS clients and sinks around pipeline.Run.
// Every entry point (CLIs and the Lambda) goes through Run.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tyler180/nwsl-stats-backends/internal/ath"
	"github.com/tyler180/nwsl-stats-backends/internal/config"
	"github.com/tyler180/nwsl-stats-backends/internal/fbref"
	"github.com/tyler180/nwsl-stats-backends/internal/pipeline"
	"github.com/tyler180/nwsl-stats-backends/internal/stats"
	"github.com/tyler180/nwsl-stats-backends/internal/store"
)

// DynamoDB covers the writes of DynamoSink and the reads of the show command.
type DynamoDB interface {
	store.DynamoDBAPI
	store.DynamoDBReadAPI
}

type Clients struct {
	S3     store.S3API
	DDB    DynamoDB
	Athena ath.AthenaAPI
}

// NeedsAWS reports whether any configured output talks to AWS.
func NeedsAWS(cfg config.Config) bool {
	return cfg.S3Bucket != "" || cfg.TableName != "" || cfg.AthenaDB != ""
}

func NewClients(ctx context.Context) (*Clients, error) {
	awsCfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}
	return &Clients{
		S3:     s3.NewFromConfig(awsCfg),
		DDB:    dynamodb.NewFromConfig(awsCfg),
		Athena: athena.NewFromConfig(awsCfg),
	}, nil
}

// Sinks builds the optional outputs in the order they must run.
func Sinks(cfg config.Config, cl *Clients, logger *slog.Logger) ([]pipeline.Sink, error) {
	var sinks []pipeline.Sink
	if cfg.Parquet {
		sinks = append(sinks, pipeline.ParquetFileSink{Dir: cfg.OutputDir})
	}
	if cfg.AthenaDB != "" && cfg.S3Bucket == "" {
		return nil, errors.New("ATHENA_DB requires S3_BUCKET")
	}
	if !NeedsAWS(cfg) {
		return sinks, nil
	}
	if cl == nil {
		return nil, errors.New("aws outputs configured without clients")
	}

	var up *store.S3Uploader
	if cfg.S3Bucket != "" {
		up = &store.S3Uploader{Client: cl.S3, Bucket: cfg.S3Bucket, Prefix: cfg.S3Prefix}
		sinks = append(sinks, pipeline.S3Sink{Uploader: up, Parquet: cfg.Parquet})
	}
	if cfg.TableName != "" {
		sinks = append(sinks, pipeline.DynamoSink{Client: cl.DDB, Table: cfg.TableName, Logger: logger})
	}
	if cfg.AthenaDB != "" {
		r := &ath.Runner{
			Client:    cl.Athena,
			Workgroup: cfg.AthenaWorkgroup,
			Database:  cfg.AthenaDB,
			OutputS3:  cfg.AthenaOutput,
			Poll:      time.Second,
			Logger:    logger,
		}
		sinks = append(sinks, pipeline.AthenaSink{Runner: r, Uploader: up})
	}
	return sinks, nil
}

// Deps overrides collaborators; zero values get production defaults.
type Deps struct {
	Out     io.Writer
	Logger  *slog.Logger
	Fetcher pipeline.PageFetcher
	Clients *Clients
	Sleep   func(ctx context.Context, d time.Duration) error
}

// Run executes each category in order against the configured teams. A failing
// category does not stop the next one; all errors are joined.
func Run(ctx context.Context, cfg config.Config, cats []stats.Category, d Deps) ([]*pipeline.Report, error) {
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Logger == nil {
		d.Logger = config.NewLogger(d.Out, cfg.Debug)
	}
	if d.Fetcher == nil {
		d.Fetcher = fbref.NewFetcher(cfg.HTTPTimeout)
	}

	teams, err := cfg.Teams()
	if err != nil {
		return nil, err
	}
	if NeedsAWS(cfg) && d.Clients == nil {
		if d.Clients, err = NewClients(ctx); err != nil {
			return nil, err
		}
	}
	sinks, err := Sinks(cfg, d.Clients, d.Logger)
	if err != nil {
		return nil, err
	}

	var reports []*pipeline.Report
	var errs []error
	for _, cat := range cats {
		rep, err := pipeline.Run(ctx, pipeline.Options{
			Category:    cat,
			Teams:       teams,
			Season:      cfg.Season,
			OutputDir:   cfg.OutputDir,
			Fetcher:     d.Fetcher,
			Throttle:    cfg.Throttle(cat),
			PreviewRows: cfg.PreviewRows,
			Sinks:       sinks,
			Out:         d.Out,
			Logger:      d.Logger,
			Sleep:       d.Sleep,
		})
		if rep != nil {
			reports = append(reports, rep)
			d.Logger.Info("run complete",
				"category", cat.Slug,
				"teams_ok", rep.Succeeded(),
				"teams_failed", len(rep.Teams)-rep.Succeeded(),
				"rows", rep.Rows,
				"written", rep.Written())
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", cat.Slug, err))
			if ctx.Err() != nil {
				break
			}
		}
	}
	return reports, errors.Join(errs...)
}
