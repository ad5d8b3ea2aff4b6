package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/subsidy-redemptions/pkg/models"
	"github.com/chris/subsidy-redemptions/pkg/storage"
)

// RollbackTransaction voids a pending transaction by deleting its row.
// Deleting (rather than flagging) frees the idempotency key, so a retry of
// the same redemption derives the same key and starts cleanly. The
// conditional delete refuses to touch a committed row; rolling back a row
// that is already gone is a no-op, which keeps rollback itself retryable.
func (s *Store) RollbackTransaction(ctx context.Context, idempotencyKey string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key: map[string]types.AttributeValue{
			"idempotency_key": &types.AttributeValueMemberS{Value: idempotencyKey},
		},
		ConditionExpression: aws.String("#state = :created"),
		ExpressionAttributeNames: map[string]string{
			"#state": "state",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":created": &types.AttributeValueMemberS{Value: string(models.CREATED)},
		},
	}

	_, err := s.Client.DeleteItem(ctx, input)
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			// Either the row no longer exists (a previous rollback won) or
			// it has already committed. Distinguish the two.
			_, getErr := s.GetTransactionByIdempotencyKey(ctx, idempotencyKey)
			if errors.Is(getErr, storage.ErrNotFound) {
				return nil
			}
			if getErr != nil {
				return fmt.Errorf("failed to inspect transaction during rollback: %w", getErr)
			}
			return storage.ErrTransactionNotPending
		}
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return nil
}
