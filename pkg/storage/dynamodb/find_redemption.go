package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/subsidy-redemptions/pkg/models"
	"github.com/chris/subsidy-redemptions/pkg/storage"
	"github.com/google/uuid"
)

// FindCommittedRedemption returns the committed transaction for the
// (subsidy, learner, content) triple, or ErrNotFound. The state filter is
// load-bearing: pending and failed rows must never surface as redemptions.
func (s *Store) FindCommittedRedemption(ctx context.Context, subsidyUUID uuid.UUID, lmsUserID, contentKey string) (*models.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(subsidyUUIDIndex),
		KeyConditionExpression: aws.String("subsidy_uuid = :subsidy"),
		FilterExpression:       aws.String("lms_user_id = :learner AND content_key = :content AND #state = :committed"),
		ExpressionAttributeNames: map[string]string{
			"#state": "state",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":subsidy":   &types.AttributeValueMemberS{Value: subsidyUUID.String()},
			":learner":   &types.AttributeValueMemberS{Value: lmsUserID},
			":content":   &types.AttributeValueMemberS{Value: contentKey},
			":committed": &types.AttributeValueMemberS{Value: string(models.COMMITTED)},
		},
	}

	// The filter can empty out a page while more pages remain, so follow
	// pagination until a match or exhaustion.
	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query for redemption: %w", err)
		}

		if len(result.Items) > 0 {
			var tx models.Transaction
			if err := attributevalue.UnmarshalMap(result.Items[0], &tx); err != nil {
				return nil, fmt.Errorf("failed to unmarshal redemption: %w", err)
			}
			return &tx, nil
		}

		if result.LastEvaluatedKey == nil {
			return nil, storage.ErrNotFound
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}
