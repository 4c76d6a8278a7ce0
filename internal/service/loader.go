package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/railtix/railtix/internal/store"
	"github.com/railtix/railtix/internal/ticket"
)

// Loader persists generated tickets in bounded batches. It is a one-shot
// seeding tool: batches are submitted sequentially, committed batches
// are not rolled back on a later failure, and nothing guards against two
// concurrent loads interleaving.
type Loader struct {
	store store.Store
	log   *zap.Logger
}

// NewLoader creates a Loader over the given store.
func NewLoader(st store.Store, log *zap.Logger) *Loader {
	return &Loader{store: st, log: log}
}

// Load writes the tickets in batches of [store.MaxBatchSize], each
// awaited before the next. The returned count is the number of tickets
// persisted by batches that committed; on error it reflects a partially
// loaded dataset. Loading the same sequence again overwrites by record
// key rather than duplicating.
func (l *Loader) Load(ctx context.Context, tickets []ticket.Ticket) (int, error) {
	persisted := 0
	batches := (len(tickets) + store.MaxBatchSize - 1) / store.MaxBatchSize
	for i := 0; i < len(tickets); i += store.MaxBatchSize {
		end := min(i+store.MaxBatchSize, len(tickets))
		batch := tickets[i:end]
		if err := l.store.PutBatch(ctx, batch); err != nil {
			return persisted, fmt.Errorf("batch %d of %d failed (%d tickets already persisted): %w",
				i/store.MaxBatchSize+1, batches, persisted, err)
		}
		persisted += len(batch)
	}

	l.log.Info("tickets loaded",
		zap.Int("count", persisted),
		zap.Int("batches", batches),
	)
	return persisted, nil
}
