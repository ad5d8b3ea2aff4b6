package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/subsidy-redemptions/pkg/models"
)

// CurrentBalance computes a subsidy's balance as its starting balance plus
// the signed sum of committed transaction quantities in its ledger. Pending
// and failed rows never count; committed-only semantics live here, not in
// callers.
func (s *Store) CurrentBalance(ctx context.Context, subsidy *models.Subsidy) (int64, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(subsidyUUIDIndex),
		KeyConditionExpression: aws.String("subsidy_uuid = :subsidy"),
		FilterExpression:       aws.String("#state = :committed"),
		ExpressionAttributeNames: map[string]string{
			"#state": "state",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":subsidy":   &types.AttributeValueMemberS{Value: subsidy.UUID.String()},
			":committed": &types.AttributeValueMemberS{Value: string(models.COMMITTED)},
		},
		ProjectionExpression: aws.String("quantity"),
	}

	balance := subsidy.StartingBalance
	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return 0, fmt.Errorf("failed to query committed transactions for balance: %w", err)
		}

		var page []struct {
			Quantity int64 `dynamodbav:"quantity"`
		}
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return 0, fmt.Errorf("failed to unmarshal transaction quantities: %w", err)
		}
		for _, row := range page {
			balance += row.Quantity
		}

		if result.LastEvaluatedKey == nil {
			return balance, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}
