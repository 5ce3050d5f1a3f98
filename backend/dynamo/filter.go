package dynamo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/hexrange/hexgrid"
	"github.com/hupe1980/hexrange/predicate"
)

// MaxExpressionBytes is the DynamoDB limit for a single expression string.
const MaxExpressionBytes = 4096

var (
	// ErrEmptyPredicate is returned for predicates without ranges. DynamoDB
	// has no expression for "false"; callers skip the request instead.
	ErrEmptyPredicate = errors.New("dynamo: empty predicate")

	// ErrExpressionTooLong is returned when the rendered filter exceeds
	// MaxExpressionBytes.
	ErrExpressionTooLong = errors.New("dynamo: filter expression too long")
)

// fieldName is the expression attribute name placeholder of the predicate field.
const fieldName = "#f"

// Filter is a predicate rendered as a DynamoDB filter expression.
type Filter struct {
	Expression string
	Names      map[string]string
	Values     map[string]types.AttributeValue
}

// BuildFilter renders pred as a disjunction of BETWEEN clauses (equality
// for single value ranges) over the predicate field.
func BuildFilter(pred predicate.Predicate) (Filter, error) {
	if pred.IsEmpty() {
		return Filter{}, ErrEmptyPredicate
	}

	var sb strings.Builder
	values := make(map[string]types.AttributeValue, 2*pred.Len())

	i := 0
	for r := range pred.All() {
		if i > 0 {
			sb.WriteString(" OR ")
		}

		n := strconv.Itoa(i)
		if r.Lower == r.Upper {
			sb.WriteString(fieldName + " = :v" + n)
			values[":v"+n] = NumberAttribute(r.Lower)
		} else {
			sb.WriteString(fieldName + " BETWEEN :l" + n + " AND :u" + n)
			values[":l"+n] = NumberAttribute(r.Lower)
			values[":u"+n] = NumberAttribute(r.Upper)
		}
		i++
	}

	if sb.Len() > MaxExpressionBytes {
		return Filter{}, fmt.Errorf("%w: %d bytes for %d ranges", ErrExpressionTooLong, sb.Len(), pred.Len())
	}

	return Filter{
		Expression: sb.String(),
		Names:      map[string]string{fieldName: pred.Field()},
		Values:     values,
	}, nil
}

// ScanInput returns a scan request for table carrying the filter.
func (f Filter) ScanInput(table string) *dynamodb.ScanInput {
	return &dynamodb.ScanInput{
		TableName:                 aws.String(table),
		FilterExpression:          aws.String(f.Expression),
		ExpressionAttributeNames:  f.Names,
		ExpressionAttributeValues: f.Values,
	}
}

// NumberAttribute encodes a compact index as a DynamoDB number. Compact
// indexes use 52 bits and are represented exactly.
func NumberAttribute(v uint64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatUint(v, 10)}
}

// CompactAttribute is NumberAttribute for a compact index. Store it under
// the predicate field at write time.
func CompactAttribute(c hexgrid.CompactIndex) types.AttributeValue {
	return NumberAttribute(uint64(c))
}

// ParseNumber decodes the number attribute name of item.
func ParseNumber(item map[string]types.AttributeValue, name string) (uint64, error) {
	av, ok := item[name]
	if !ok {
		return 0, fmt.Errorf("dynamo: attribute %q missing", name)
	}
	n, ok := av.(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("dynamo: attribute %q is %T, not a number", name, av)
	}
	v, err := strconv.ParseUint(n.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("dynamo: attribute %q: %w", name, err)
	}
	return v, nil
}
