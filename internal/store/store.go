// Package store defines the persistence contract shared by the DynamoDB
// and Badger backends. A backend stores tickets under the key scheme
// from the ticket package and answers prefix-range queries over the
// sort key.
package store

import (
	"context"
	"errors"

	"github.com/railtix/railtix/internal/ticket"
)

// MaxBatchSize is the largest number of tickets a backend must accept in
// a single PutBatch. 25 is DynamoDB's BatchWriteItem ceiling; the Badger
// backend honors the same bound so callers can chunk uniformly.
const MaxBatchSize = 25

// ErrTooManyItems is returned by PutBatch when the batch exceeds
// MaxBatchSize.
var ErrTooManyItems = errors.New("batch exceeds maximum atomic write size")

// Store is the persistence backend for tickets.
//
// PutBatch persists one batch atomically, keyed by each ticket's record
// key: re-writing a ticket with an existing key overwrites it.
// QueryPrefix returns every ticket in the partition whose sort key
// begins with the prefix, in ascending sort-key order; an empty prefix
// returns the whole partition.
type Store interface {
	PutBatch(ctx context.Context, tickets []ticket.Ticket) error
	QueryPrefix(ctx context.Context, partitionKey, sortKeyPrefix string) ([]ticket.Ticket, error)
	Close() error
}
