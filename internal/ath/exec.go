package ath

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"
)

type AthenaAPI interface {
	StartQueryExecution(ctx context.Context, params *athena.StartQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.StartQueryExecutionOutput, error)
	GetQueryExecution(ctx context.Context, params *athena.GetQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.GetQueryExecutionOutput, error)
	GetQueryResults(ctx context.Context, params *athena.GetQueryResultsInput, optFns ...func(*athena.Options)) (*athena.GetQueryResultsOutput, error)
}

type Runner struct {
	Client    AthenaAPI
	Workgroup string
	Database  string
	OutputS3  string // s3://bucket/prefix/; empty uses the workgroup default
	Poll      time.Duration
	Logger    *slog.Logger
}

func (r *Runner) ExecAndWait(ctx context.Context, sql string) (*types.QueryExecution, error) {
	in := &athena.StartQueryExecutionInput{
		QueryString: aws.String(sql),
		QueryExecutionContext: &types.QueryExecutionContext{
			Database: aws.String(r.Database),
		},
		WorkGroup: aws.String(r.Workgroup),
	}
	if r.OutputS3 != "" {
		in.ResultConfiguration = &types.ResultConfiguration{OutputLocation: aws.String(r.OutputS3)}
	}
	startOut, err := r.Client.StartQueryExecution(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("start query: %w", err)
	}
	qid := aws.ToString(startOut.QueryExecutionId)
	r.logger().Debug("athena query started", "qid", qid)

	poll := r.Poll
	if poll <= 0 {
		poll = time.Second
	}
	tick := time.NewTicker(poll)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-tick.C:
			ge, err := r.Client.GetQueryExecution(ctx, &athena.GetQueryExecutionInput{
				QueryExecutionId: aws.String(qid),
			})
			if err != nil {
				return nil, fmt.Errorf("get query execution: %w", err)
			}
			qe := ge.QueryExecution
			if qe == nil || qe.Status == nil {
				continue
			}
			switch qe.Status.State {
			case types.QueryExecutionStateSucceeded:
				var scannedMB, execSec float64
				if st := qe.Statistics; st != nil {
					if st.DataScannedInBytes != nil {
						scannedMB = float64(*st.DataScannedInBytes) / 1024.0 / 1024.0
					}
					if st.EngineExecutionTimeInMillis != nil {
						execSec = float64(*st.EngineExecutionTimeInMillis) / 1000.0
					}
				}
				r.logger().Info("athena query succeeded", "qid", qid,
					"scanned_mb", fmt.Sprintf("%.3f", scannedMB), "exec_s", fmt.Sprintf("%.2f", execSec))
				return qe, nil
			case types.QueryExecutionStateFailed:
				msg := ""
				if qe.Status.AthenaError != nil && qe.Status.AthenaError.ErrorMessage != nil {
					msg = *qe.Status.AthenaError.ErrorMessage
				} else if qe.Status.StateChangeReason != nil {
					msg = *qe.Status.StateChangeReason
				}
				return nil, errors.New("athena failed: " + msg)
			case types.QueryExecutionStateCancelled:
				return nil, errors.New("athena cancelled")
			default:
				// still running
			}
		}
	}
}

func (r *Runner) CountRows(ctx context.Context, table string) (int64, error) {
	sql := fmt.Sprintf("SELECT COUNT(*) AS c FROM %s", table)
	exec, err := r.ExecAndWait(ctx, sql)
	if err != nil {
		return 0, err
	}
	gr, err := r.Client.GetQueryResults(ctx, &athena.GetQueryResultsInput{
		QueryExecutionId: exec.QueryExecutionId,
	})
	if err != nil {
		return 0, fmt.Errorf("get results: %w", err)
	}
	if len(gr.ResultSet.Rows) < 2 || len(gr.ResultSet.Rows[1].Data) < 1 || gr.ResultSet.Rows[1].Data[0].VarCharValue == nil {
		return 0, errors.New("unexpected COUNT(*) result shape")
	}
	var n int64
	if _, err := fmt.Sscan(*gr.ResultSet.Rows[1].Data[0].VarCharValue, &n); err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return n, nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
