package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/subsidy-redemptions/pkg/models"
	"github.com/chris/subsidy-redemptions/pkg/storage"
)

// CommitTransaction atomically transitions a pending transaction to
// committed and records the enrollment reference on it. The conditional
// update on state means a transaction can only move forward: committing a
// row that is not pending fails with ErrTransactionNotPending.
func (s *Store) CommitTransaction(ctx context.Context, idempotencyKey, referenceID, referenceType string) (*models.Transaction, error) {
	now := time.Now().UTC()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp for commit: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key: map[string]types.AttributeValue{
			"idempotency_key": &types.AttributeValueMemberS{Value: idempotencyKey},
		},
		UpdateExpression:    aws.String("SET #state = :committed, reference_id = :ref_id, reference_type = :ref_type, updated_at = :now"),
		ConditionExpression: aws.String("attribute_exists(idempotency_key) AND #state = :created"),
		ExpressionAttributeNames: map[string]string{
			"#state": "state",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":committed": &types.AttributeValueMemberS{Value: string(models.COMMITTED)},
			":created":   &types.AttributeValueMemberS{Value: string(models.CREATED)},
			":ref_id":    &types.AttributeValueMemberS{Value: referenceID},
			":ref_type":  &types.AttributeValueMemberS{Value: referenceType},
			":now":       nowAV,
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, storage.ErrTransactionNotPending
		}
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	var committed models.Transaction
	if err := attributevalue.UnmarshalMap(result.Attributes, &committed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal committed transaction: %w", err)
	}

	return &committed, nil
}
