package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	ddb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tyler180/nwsl-stats-backends/internal/stats"
)

// fake client implementing DynamoDBAPI
type fakeDDB struct {
	calls int
	// simulate first attempt returning unprocessed, second succeeds
	failFirst bool
	items     []map[string]types.AttributeValue
}

func (f *fakeDDB) BatchWriteItem(ctx context.Context, in *ddb.BatchWriteItemInput, _ ...func(*ddb.Options)) (*ddb.BatchWriteItemOutput, error) {
	f.calls++
	if f.failFirst {
		f.failFirst = false
		// Echo back all as unprocessed to force a retry
		return &ddb.BatchWriteItemOutput{
			UnprocessedItems: in.RequestItems,
		}, nil
	}
	for _, reqs := range in.RequestItems {
		for _, r := range reqs {
			f.items = append(f.items, r.PutRequest.Item)
		}
	}
	return &ddb.BatchWriteItemOutput{}, nil
}

func defenseTable(n int) *stats.Table {
	t := &stats.Table{Columns: []string{"Rk_Rk", "Player", "Tackles_Tkl", "Pos", "Team"}}
	for i := 0; i < n; i++ {
		t.Rows = append(t.Rows, stats.Row{
			"Rk_Rk":       fmt.Sprint(i + 1),
			"Player":      fmt.Sprintf("P%02d", i),
			"Tackles_Tkl": fmt.Sprint(i * 2),
			"Pos":         "DF",
			"Team":        "Gotham FC",
		})
	}
	return t
}

func TestPutStatRows_BatchingAndRetry(t *testing.T) {
	// 30 rows → 25 + 5 batches
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	fc := &fakeDDB{failFirst: true}
	n, err := PutStatRows(ctx, fc, "tbl", "2025", stats.Defense, defenseTable(30))
	if err != nil {
		t.Fatalf("PutStatRows error: %v", err)
	}
	if n != 30 {
		t.Fatalf("wrote %d items, want 30", n)
	}
	// First batch is attempted twice (one retry), second batch once.
	if fc.calls != 3 {
		t.Fatalf("expected 3 BatchWriteItem calls, got %d", fc.calls)
	}
}

func TestPutStatRows_ItemShape(t *testing.T) {
	tbl := defenseTable(2)
	// blank player, tfoot totals and a duplicate player
	tbl.Rows = append(tbl.Rows,
		stats.Row{"Player": "", "Team": "Gotham FC", "Tackles_Tkl": "40"},
		stats.Row{"Player": "Squad Total", "Team": "Gotham FC", "Tackles_Tkl": "41"},
		stats.Row{"Player": "Opponent Total", "Team": "Gotham FC", "Tackles_Tkl": "38"},
		stats.Row{"Player": "P00", "Team": "Gotham FC", "Tackles_Tkl": "99"},
	)

	fc := &fakeDDB{}
	n, err := PutStatRows(context.Background(), fc, "tbl", "2025", stats.Defense, tbl)
	if err != nil {
		t.Fatalf("PutStatRows error: %v", err)
	}
	if n != 2 || len(fc.items) != 2 {
		t.Fatalf("wrote %d items (%d seen), want 2", n, len(fc.items))
	}

	for _, item := range fc.items {
		sk := item["StatKey"].(*types.AttributeValueMemberS).Value
		if strings.Contains(sk, "Total") {
			t.Errorf("footer row written as player: %s", sk)
		}
	}

	it := fc.items[1]
	if got := it["SeasonTeam"].(*types.AttributeValueMemberS).Value; got != "2025#Gotham FC" {
		t.Errorf("SeasonTeam = %q", got)
	}
	if got := it["StatKey"].(*types.AttributeValueMemberS).Value; got != "defense#P01" {
		t.Errorf("StatKey = %q", got)
	}
	if got, ok := it["Tackles_Tkl"].(*types.AttributeValueMemberN); !ok || got.Value != "2" {
		t.Errorf("Tackles_Tkl = %#v, want N 2", it["Tackles_Tkl"])
	}
	if _, ok := it["Pos"].(*types.AttributeValueMemberS); !ok {
		t.Errorf("Pos should be a string attribute")
	}
	if _, ok := it["UpdatedAt"].(*types.AttributeValueMemberN); !ok {
		t.Errorf("UpdatedAt missing")
	}
}

func TestPutStatRows_Empty(t *testing.T) {
	fc := &fakeDDB{}
	n, err := PutStatRows(context.Background(), fc, "tbl", "2025", stats.Defense, &stats.Table{})
	if err != nil || n != 0 || fc.calls != 0 {
		t.Fatalf("n=%d err=%v calls=%d", n, err, fc.calls)
	}
}
