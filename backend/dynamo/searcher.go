package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/hexrange/predicate"
)

// Client is the subset of the DynamoDB API used by Searcher.
// *dynamodb.Client satisfies it.
type Client interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Item is a raw DynamoDB item.
type Item = map[string]types.AttributeValue

// Searcher evaluates predicates with paginated, filtered scans.
//
// Table schema: any key schema; entities carry the predicate field as a
// number attribute holding their compact index.
//
// A Searcher is safe for concurrent use; the page rate limit is shared.
type Searcher struct {
	client Client
	table  string
	opts   options
}

// NewSearcher creates a Searcher over table.
func NewSearcher(client Client, table string, optFns ...Option) (*Searcher, error) {
	if client == nil {
		return nil, errors.New("dynamo: nil client")
	}
	if table == "" {
		return nil, errors.New("dynamo: empty table name")
	}

	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Searcher{client: client, table: table, opts: opts}, nil
}

// Search returns the items matching pred. An empty predicate matches
// nothing and issues no request.
func (s *Searcher) Search(ctx context.Context, pred predicate.Predicate) ([]Item, error) {
	if pred.IsEmpty() {
		return nil, nil
	}

	filter, err := BuildFilter(pred)
	if err != nil {
		return nil, err
	}

	input := filter.ScanInput(s.table)
	if s.opts.pageSize > 0 {
		input.Limit = aws.Int32(s.opts.pageSize)
	}
	if s.opts.consistentRead {
		input.ConsistentRead = aws.Bool(true)
	}
	if len(s.opts.projection) > 0 {
		s.project(input)
	}

	start := time.Now()
	var (
		items   []Item
		pages   int
		scanned int32
	)

	for {
		if err := s.opts.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		out, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("dynamo: scan %s page %d: %w", s.table, pages, err)
		}
		pages++
		scanned += out.ScannedCount
		items = append(items, out.Items...)

		if s.opts.maxItems > 0 && len(items) >= s.opts.maxItems {
			items = items[:s.opts.maxItems]
			break
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	s.opts.logger.DebugContext(ctx, "dynamo scan completed",
		"table", s.table,
		"ranges", pred.Len(),
		"pages", pages,
		"scanned", scanned,
		"items", len(items),
		"elapsed", time.Since(start),
	)

	return items, nil
}

// project restricts the returned attributes. Names get placeholders so
// reserved words work.
func (s *Searcher) project(input *dynamodb.ScanInput) {
	names := make(map[string]string, len(input.ExpressionAttributeNames)+len(s.opts.projection))
	for k, v := range input.ExpressionAttributeNames {
		names[k] = v
	}

	expr := ""
	for i, attr := range s.opts.projection {
		ph := fmt.Sprintf("#p%d", i)
		names[ph] = attr
		if i > 0 {
			expr += ", "
		}
		expr += ph
	}

	input.ExpressionAttributeNames = names
	input.ProjectionExpression = aws.String(expr)
}
