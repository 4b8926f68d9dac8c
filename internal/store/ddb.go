package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tyler180/nwsl-stats-backends/internal/stats"
)

type DynamoDBAPI interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// Key schema: PK=SeasonTeam (S, "2025#Gotham FC"), SK=StatKey (S, "defense#Esther González").
const (
	pkAttr = "SeasonTeam"
	skAttr = "StatKey"
)

// PutStatRows upserts one item per player row. Rows without a player name,
// repeated header rows and footer totals ("Squad Total", "Opponent Total") are
// skipped, and duplicate keys keep the first row.
// Numeric cells are stored as N, everything else as S.
func PutStatRows(ctx context.Context, ddb DynamoDBAPI, tableName, season string, cat stats.Category, t *stats.Table) (int, error) {
	if t == nil || t.Len() == 0 {
		return 0, nil
	}
	now := strconv.FormatInt(time.Now().Unix(), 10)

	seen := make(map[string]struct{}, t.Len())
	reqs := make([]types.WriteRequest, 0, t.Len())
	for _, r := range t.Rows {
		player := r["Player"]
		team := r[stats.TeamColumn]
		if player == "" || team == "" || player == "Player" || stats.IsTotal(player) {
			continue
		}
		pk := season + "#" + team
		sk := cat.Slug + "#" + player
		if _, dup := seen[pk+"|"+sk]; dup {
			continue
		}
		seen[pk+"|"+sk] = struct{}{}

		item := map[string]types.AttributeValue{
			pkAttr:      &types.AttributeValueMemberS{Value: pk},
			skAttr:      &types.AttributeValueMemberS{Value: sk},
			"Season":    &types.AttributeValueMemberS{Value: season},
			"Category":  &types.AttributeValueMemberS{Value: cat.Slug},
			"UpdatedAt": &types.AttributeValueMemberN{Value: now},
		}
		for _, c := range t.Columns {
			v := r[c]
			if v == "" {
				continue
			}
			if _, reserved := item[c]; reserved {
				continue
			}
			if f, ok := r.Float(c); ok {
				item[c] = &types.AttributeValueMemberN{Value: strconv.FormatFloat(f, 'f', -1, 64)}
			} else {
				item[c] = &types.AttributeValueMemberS{Value: v}
			}
		}
		reqs = append(reqs, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
	}

	const maxBatch = 25
	for i := 0; i < len(reqs); i += maxBatch {
		end := i + maxBatch
		if end > len(reqs) {
			end = len(reqs)
		}
		if err := batchWriteWithRetry(ctx, ddb, tableName, reqs[i:end]); err != nil {
			return 0, fmt.Errorf("batch write %s rows: %w", cat.Slug, err)
		}
	}
	return len(reqs), nil
}

// batchWriteWithRetry resubmits UnprocessedItems with a growing backoff.
func batchWriteWithRetry(ctx context.Context, ddb DynamoDBAPI, table string, reqs []types.WriteRequest) error {
	input := &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{table: reqs},
	}
	const maxAttempts = 6
	backoff := 120 * time.Millisecond

	for attempt := 0; attempt < maxAttempts; attempt++ {
		out, err := ddb.BatchWriteItem(ctx, input)
		if err != nil {
			return err
		}
		if len(out.UnprocessedItems) == 0 || len(out.UnprocessedItems[table]) == 0 {
			return nil
		}
		input.RequestItems = out.UnprocessedItems
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 2*time.Second {
			backoff += 120 * time.Millisecond
		}
	}
	return fmt.Errorf("unprocessed items remained after retries for table %s", table)
}
