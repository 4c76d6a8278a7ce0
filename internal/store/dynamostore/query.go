package dynamostore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/railtix/railtix/internal/ticket"
)

// QueryPrefix returns every ticket in the partition whose sort key
// begins with sortKeyPrefix, ascending. Result ordering comes from
// DynamoDB's native sort-key order (ScanIndexForward); there is no
// client-side sort. Pages are followed until LastEvaluatedKey is empty.
func (s *Store) QueryPrefix(ctx context.Context, partitionKey, sortKeyPrefix string) ([]ticket.Ticket, error) {
	key := expression.KeyEqual(expression.Key(s.table.PartitionKeyName), expression.Value(partitionKey))
	if sortKeyPrefix != "" {
		key = key.And(expression.KeyBeginsWith(expression.Key(s.table.SortKeyName), sortKeyPrefix))
	}
	expr, err := expression.NewBuilder().WithKeyCondition(key).Build()
	if err != nil {
		return nil, fmt.Errorf("build key condition: %w", err)
	}

	tickets := []ticket.Ticket{}
	var cursor map[string]types.AttributeValue
	for {
		res, err := s.api.Query(ctx, &dynamodb.QueryInput{
			TableName:                 &s.table.Name,
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ScanIndexForward:          ptr(true),
			ExclusiveStartKey:         cursor,
		})
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", s.table.Name, err)
		}

		var page []ticket.Ticket
		if err := attributevalue.UnmarshalListOfMaps(res.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal query result: %w", err)
		}
		tickets = append(tickets, page...)

		if res.LastEvaluatedKey == nil {
			return tickets, nil
		}
		cursor = res.LastEvaluatedKey
	}
}
