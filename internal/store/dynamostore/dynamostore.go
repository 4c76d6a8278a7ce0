// Package dynamostore persists tickets in DynamoDB. Writes go through
// BatchWriteItem with unprocessed-item retry; reads are key-condition
// queries with a begins_with range on the sort key.
package dynamostore

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/railtix/railtix/internal/store"
)

// DynamoAPI is the subset of the DynamoDB client this store uses.
// Narrowed so tests can substitute a fake.
type DynamoAPI interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// Table names the DynamoDB table and its key attributes.
type Table struct {
	Name             string
	PartitionKeyName string
	SortKeyName      string
}

// DefaultTable is the ticket table as provisioned: a "route" partition
// key with a "route_date" range key.
func DefaultTable() Table {
	return Table{
		Name:             "ticket_routes_v2",
		PartitionKeyName: "route",
		SortKeyName:      "route_date",
	}
}

// Store is a ticket store backed by DynamoDB. Construct with New; the
// SDK client is injected, never created at package scope.
type Store struct {
	api        DynamoAPI
	table      Table
	maxRetries int
	backoff    BackoffFunc
}

var _ store.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithMaxRetries bounds the unprocessed-item retry loop in PutBatch.
func WithMaxRetries(n int) Option {
	return func(s *Store) { s.maxRetries = n }
}

// WithBackoff overrides the retry backoff schedule.
func WithBackoff(fn BackoffFunc) Option {
	return func(s *Store) { s.backoff = fn }
}

const defaultMaxRetries = 5

// New creates a Store over the given client and table.
func New(api DynamoAPI, table Table, opts ...Option) *Store {
	s := &Store{
		api:        api,
		table:      table,
		maxRetries: defaultMaxRetries,
		backoff:    DefaultBackoff,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close is a no-op; the SDK client holds no resources of its own.
func (s *Store) Close() error {
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
