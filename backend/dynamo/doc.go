// Package dynamo evaluates compact index predicates against Amazon
// DynamoDB.
//
// BuildFilter renders a predicate as a FilterExpression such as
//
//	#f BETWEEN :l0 AND :u0 OR #f = :v1
//
// with the field name and bounds passed as expression attributes.
// Searcher runs it as a paginated, rate-limited Scan.
//
// Entities must store their compact index under the predicate field as a
// number attribute (see CompactAttribute).
package dynamo
