package store

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tyler180/nwsl-stats-backends/internal/stats"
)

type DynamoDBReadAPI interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// QueryTeamRows reads back the rows PutStatRows stored for one team and
// category. Columns are Player first, then the rest sorted by name.
func QueryTeamRows(ctx context.Context, ddb DynamoDBReadAPI, tableName, season, team, category string) (*stats.Table, error) {
	var items []map[string]types.AttributeValue
	var lastKey map[string]types.AttributeValue
	for {
		out, err := ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(tableName),
			KeyConditionExpression: aws.String("#PK = :pk AND begins_with(#SK, :cat)"),
			ExpressionAttributeNames: map[string]string{
				"#PK": pkAttr,
				"#SK": skAttr,
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk":  &types.AttributeValueMemberS{Value: season + "#" + team},
				":cat": &types.AttributeValueMemberS{Value: category + "#"},
			},
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = out.LastEvaluatedKey
	}

	skip := map[string]bool{pkAttr: true, skAttr: true, "Season": true, "Category": true, "UpdatedAt": true}
	colSet := map[string]struct{}{}
	t := &stats.Table{Rows: make([]stats.Row, 0, len(items))}
	for _, it := range items {
		row := stats.Row{}
		for k := range it {
			if skip[k] {
				continue
			}
			row[k] = getStr(it, k)
			colSet[k] = struct{}{}
		}
		t.Rows = append(t.Rows, row)
	}

	for c := range colSet {
		if c != "Player" {
			t.Columns = append(t.Columns, c)
		}
	}
	sort.Strings(t.Columns)
	if _, ok := colSet["Player"]; ok {
		t.Columns = append([]string{"Player"}, t.Columns...)
	}
	return t, nil
}

func getStr(m map[string]types.AttributeValue, key string) string {
	if v, ok := m[key]; ok {
		switch t := v.(type) {
		case *types.AttributeValueMemberS:
			return t.Value
		case *types.AttributeValueMemberN:
			return t.Value
		}
	}
	return ""
}
