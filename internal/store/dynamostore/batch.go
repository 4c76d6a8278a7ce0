package dynamostore

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/railtix/railtix/internal/store"
	"github.com/railtix/railtix/internal/ticket"
)

// PutBatch writes one batch of at most [store.MaxBatchSize] tickets via
// BatchWriteItem. DynamoDB may return a subset as unprocessed under
// throttling; those are resubmitted with backoff until they drain or the
// retry bound is hit. Puts are plain overwrites keyed by the item's
// primary key, so re-loading the same tickets is an upsert.
func (s *Store) PutBatch(ctx context.Context, tickets []ticket.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	if len(tickets) > store.MaxBatchSize {
		return fmt.Errorf("%w: %d items, max %d", store.ErrTooManyItems, len(tickets), store.MaxBatchSize)
	}

	pending := make([]types.WriteRequest, 0, len(tickets))
	for _, tk := range tickets {
		item, err := attributevalue.MarshalMap(tk)
		if err != nil {
			return fmt.Errorf("marshal ticket %s: %w", tk.RecordKey, err)
		}
		pending = append(pending, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}

	var retries int
	for {
		res, err := s.api.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{s.table.Name: pending},
		})
		if err != nil {
			return fmt.Errorf("batch write %s: %w", s.table.Name, err)
		}

		pending = res.UnprocessedItems[s.table.Name]
		if len(pending) == 0 {
			return nil
		}
		if retries >= s.maxRetries {
			return fmt.Errorf("max retries (%d) exceeded: %d items unprocessed", s.maxRetries, len(pending))
		}
		retries++

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.backoff(retries)):
		}
	}
}
