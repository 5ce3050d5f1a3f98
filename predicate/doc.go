// Package predicate represents a radius query as an ordered disjunction of
// closed ranges over a stored compact index.
//
// Query layers translate a Predicate into their own filter language; SQL
// is built in, DynamoDB lives in backend/dynamo. Matches evaluates the
// predicate in process with a binary search.
package predicate
