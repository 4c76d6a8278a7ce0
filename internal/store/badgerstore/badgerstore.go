// Package badgerstore persists tickets in BadgerDB for local
// development and tests. Keys are the ticket record keys, so Badger's
// lexicographic key order gives the same ascending sort-key ordering a
// DynamoDB range query would.
package badgerstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/railtix/railtix/internal/store"
	"github.com/railtix/railtix/internal/ticket"
)

// Options configures the Badger store.
type Options struct {
	// Path to the database directory. Empty means in-memory.
	Path string
	// InMemory forces in-memory mode even if Path is set.
	InMemory bool
	// Logger for BadgerDB. If nil, logging is disabled.
	Logger badger.Logger
}

// Store is a ticket store backed by BadgerDB.
type Store struct {
	db *badger.DB
}

var _ store.Store = (*Store)(nil)

// Open opens (or creates) the store.
func Open(opts Options) (*Store, error) {
	badgerOpts := badger.DefaultOptions(opts.Path)
	if opts.Path == "" || opts.InMemory {
		badgerOpts = badgerOpts.WithInMemory(true)
	}
	badgerOpts = badgerOpts.WithLogger(opts.Logger)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &Store{db: db}, nil
}

// PutBatch writes one batch of at most [store.MaxBatchSize] tickets in a
// single transaction. Existing record keys are overwritten.
func (s *Store) PutBatch(ctx context.Context, tickets []ticket.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	if len(tickets) > store.MaxBatchSize {
		return fmt.Errorf("%w: %d items, max %d", store.ErrTooManyItems, len(tickets), store.MaxBatchSize)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		for _, tk := range tickets {
			val, err := json.Marshal(tk)
			if err != nil {
				return fmt.Errorf("marshal ticket %s: %w", tk.RecordKey, err)
			}
			if err := txn.Set([]byte(tk.RecordKey), val); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("batch write: %w", err)
	}
	return nil
}

// QueryPrefix iterates the partition in key order. The record key is
// "<partition key>|<sort key>", so seeking to partitionKey + "|" +
// sortKeyPrefix visits exactly the tickets whose sort key begins with
// the prefix, ascending.
func (s *Store) QueryPrefix(ctx context.Context, partitionKey, sortKeyPrefix string) ([]ticket.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(ticket.RecordKey(partitionKey, sortKeyPrefix))
	tickets := []ticket.Ticket{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var tk ticket.Ticket
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &tk)
			}); err != nil {
				return fmt.Errorf("decode item %s: %w", it.Item().Key(), err)
			}
			tickets = append(tickets, tk)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("prefix query: %w", err)
	}
	return tickets, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
