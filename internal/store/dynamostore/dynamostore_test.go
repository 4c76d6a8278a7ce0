package dynamostore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"github.com/railtix/railtix/internal/store"
	"github.com/railtix/railtix/internal/ticket"
)

// fakeDynamo implements DynamoAPI with injectable responses.
type fakeDynamo struct {
	queryInputs []*dynamodb.QueryInput
	queryFn     func(call int, params *dynamodb.QueryInput) (*dynamodb.QueryOutput, error)

	batchInputs []*dynamodb.BatchWriteItemInput
	batchFn     func(call int, params *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error)
}

func (f *fakeDynamo) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queryInputs = append(f.queryInputs, params)
	return f.queryFn(len(f.queryInputs)-1, params)
}

func (f *fakeDynamo) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	f.batchInputs = append(f.batchInputs, params)
	return f.batchFn(len(f.batchInputs)-1, params)
}

func testTickets(n int) []ticket.Ticket {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	all := ticket.Generate("Chennai", "Bangalore", start, (n+3)/4, 4)
	return all[:n]
}

func itemFor(tk ticket.Ticket) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id":             &types.AttributeValueMemberS{Value: tk.RecordKey},
		"route":          &types.AttributeValueMemberS{Value: tk.Route},
		"route_date":     &types.AttributeValueMemberS{Value: tk.RouteDate},
		"origin":         &types.AttributeValueMemberS{Value: tk.Origin},
		"destination":    &types.AttributeValueMemberS{Value: tk.Destination},
		"service_date":   &types.AttributeValueMemberS{Value: tk.ServiceDate},
		"departure_at":   &types.AttributeValueMemberS{Value: tk.DepartureAt.Format(time.RFC3339)},
		"arrival_at":     &types.AttributeValueMemberS{Value: tk.ArrivalAt.Format(time.RFC3339)},
		"standard_price": &types.AttributeValueMemberN{Value: fmt.Sprint(tk.StandardFare)},
		"plus_price":     &types.AttributeValueMemberN{Value: fmt.Sprint(tk.PlusFare)},
	}
}

func TestQueryPrefix_KeyCondition(t *testing.T) {
	fake := &fakeDynamo{
		queryFn: func(int, *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			return &dynamodb.QueryOutput{}, nil
		},
	}
	s := New(fake, DefaultTable())

	_, err := s.QueryPrefix(context.Background(), "Chennai#Bangalore", "2024-01-01")
	require.NoError(t, err)
	require.Len(t, fake.queryInputs, 1)

	in := fake.queryInputs[0]
	require.Equal(t, "ticket_routes_v2", *in.TableName)
	require.Contains(t, *in.KeyConditionExpression, "begins_with")
	require.True(t, *in.ScanIndexForward, "whole-day queries must read in ascending sort-key order")

	names := make(map[string]bool)
	for _, n := range in.ExpressionAttributeNames {
		names[n] = true
	}
	require.True(t, names["route"], "partition key attribute must be referenced")
	require.True(t, names["route_date"], "sort key attribute must be referenced")

	values := make(map[string]bool)
	for _, v := range in.ExpressionAttributeValues {
		if sv, ok := v.(*types.AttributeValueMemberS); ok {
			values[sv.Value] = true
		}
	}
	require.True(t, values["Chennai#Bangalore"])
	require.True(t, values["2024-01-01"])
}

func TestQueryPrefix_EmptyResult(t *testing.T) {
	fake := &fakeDynamo{
		queryFn: func(int, *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			return &dynamodb.QueryOutput{}, nil
		},
	}
	s := New(fake, DefaultTable())

	got, err := s.QueryPrefix(context.Background(), "London#Paris", "2030-01-01")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestQueryPrefix_Pagination(t *testing.T) {
	tks := testTickets(4)
	cursor := map[string]types.AttributeValue{
		"route":      &types.AttributeValueMemberS{Value: tks[1].Route},
		"route_date": &types.AttributeValueMemberS{Value: tks[1].RouteDate},
	}
	fake := &fakeDynamo{
		queryFn: func(call int, params *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			if call == 0 {
				require.Nil(t, params.ExclusiveStartKey)
				return &dynamodb.QueryOutput{
					Items:            []map[string]types.AttributeValue{itemFor(tks[0]), itemFor(tks[1])},
					LastEvaluatedKey: cursor,
				}, nil
			}
			require.Equal(t, cursor, params.ExclusiveStartKey)
			return &dynamodb.QueryOutput{
				Items: []map[string]types.AttributeValue{itemFor(tks[2]), itemFor(tks[3])},
			}, nil
		},
	}
	s := New(fake, DefaultTable())

	got, err := s.QueryPrefix(context.Background(), tks[0].Route, tks[0].ServiceDate)
	require.NoError(t, err)
	require.Len(t, fake.queryInputs, 2)
	require.Len(t, got, 4)
	for i, tk := range got {
		require.Equal(t, tks[i].RecordKey, tk.RecordKey)
		require.Equal(t, tks[i].StandardFare, tk.StandardFare)
		require.True(t, tks[i].DepartureAt.Equal(tk.DepartureAt))
	}
}

func TestQueryPrefix_Error(t *testing.T) {
	fake := &fakeDynamo{
		queryFn: func(int, *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			return nil, fmt.Errorf("throughput exceeded")
		},
	}
	s := New(fake, DefaultTable())

	_, err := s.QueryPrefix(context.Background(), "Chennai#Bangalore", "2024-01-01")
	require.ErrorContains(t, err, "throughput exceeded")
}

func TestPutBatch_WritesAllItems(t *testing.T) {
	fake := &fakeDynamo{
		batchFn: func(int, *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error) {
			return &dynamodb.BatchWriteItemOutput{}, nil
		},
	}
	s := New(fake, DefaultTable())

	tks := testTickets(8)
	require.NoError(t, s.PutBatch(context.Background(), tks))
	require.Len(t, fake.batchInputs, 1)

	reqs := fake.batchInputs[0].RequestItems["ticket_routes_v2"]
	require.Len(t, reqs, 8)
	for i, req := range reqs {
		require.NotNil(t, req.PutRequest)
		id, ok := req.PutRequest.Item["id"].(*types.AttributeValueMemberS)
		require.True(t, ok, "record key must be a string attribute")
		require.Equal(t, tks[i].RecordKey, id.Value)
	}
}

func TestPutBatch_TooManyItems(t *testing.T) {
	s := New(&fakeDynamo{}, DefaultTable())
	err := s.PutBatch(context.Background(), testTickets(store.MaxBatchSize+1))
	require.ErrorIs(t, err, store.ErrTooManyItems)
}

func TestPutBatch_RetriesUnprocessed(t *testing.T) {
	fake := &fakeDynamo{
		batchFn: func(call int, params *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error) {
			if call == 0 {
				// Throttle the last two items.
				reqs := params.RequestItems["ticket_routes_v2"]
				return &dynamodb.BatchWriteItemOutput{
					UnprocessedItems: map[string][]types.WriteRequest{
						"ticket_routes_v2": reqs[len(reqs)-2:],
					},
				}, nil
			}
			require.Len(t, params.RequestItems["ticket_routes_v2"], 2)
			return &dynamodb.BatchWriteItemOutput{}, nil
		},
	}
	s := New(fake, DefaultTable(), WithBackoff(func(int) time.Duration { return 0 }))

	require.NoError(t, s.PutBatch(context.Background(), testTickets(8)))
	require.Len(t, fake.batchInputs, 2)
}

func TestPutBatch_MaxRetriesExceeded(t *testing.T) {
	fake := &fakeDynamo{
		batchFn: func(call int, params *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error) {
			// Never makes progress.
			return &dynamodb.BatchWriteItemOutput{
				UnprocessedItems: map[string][]types.WriteRequest{
					"ticket_routes_v2": params.RequestItems["ticket_routes_v2"],
				},
			}, nil
		},
	}
	s := New(fake, DefaultTable(),
		WithMaxRetries(2),
		WithBackoff(func(int) time.Duration { return 0 }),
	)

	err := s.PutBatch(context.Background(), testTickets(4))
	require.ErrorContains(t, err, "max retries")
	require.Len(t, fake.batchInputs, 3)
}

func TestPutBatch_Error(t *testing.T) {
	fake := &fakeDynamo{
		batchFn: func(int, *dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error) {
			return nil, fmt.Errorf("service unavailable")
		},
	}
	s := New(fake, DefaultTable())

	err := s.PutBatch(context.Background(), testTickets(4))
	require.ErrorContains(t, err, "service unavailable")
}

func TestPutBatch_EmptyIsNoop(t *testing.T) {
	fake := &fakeDynamo{}
	s := New(fake, DefaultTable())
	require.NoError(t, s.PutBatch(context.Background(), nil))
	require.Empty(t, fake.batchInputs)
}
