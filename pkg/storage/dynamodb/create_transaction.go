package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/subsidy-redemptions/pkg/models"
	"github.com/google/uuid"
)

// CreateTransaction records a new pending transaction under its idempotency
// key. The conditional Put on the partition key makes this an atomic
// insert-or-fetch-existing: when the key is already taken, the existing row
// is fetched and returned instead of an error. This is what guarantees that
// concurrent redemptions with identical inputs collide on one row rather
// than double-debiting the ledger.
func (s *Store) CreateTransaction(ctx context.Context, newTx *models.Transaction) (*models.Transaction, bool, error) {
	if newTx.IdempotencyKey == "" {
		return nil, false, fmt.Errorf("transaction is missing an idempotency key")
	}

	// Complete the transaction object with server-side details.
	now := time.Now().UTC()
	newTx.UUID = uuid.New()
	newTx.State = models.CREATED
	newTx.CreatedAt = now
	newTx.UpdatedAt = now

	slog.Log(ctx, slog.LevelDebug, "creating transaction",
		"idempotency_key", newTx.IdempotencyKey, "quantity", newTx.Quantity)

	txAV, err := attributevalue.MarshalMap(newTx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.TransactionsTableName),
		Item:                txAV,
		ConditionExpression: aws.String("attribute_not_exists(idempotency_key)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			// Lost the race (or this is a retry): hand back the winner's row.
			existing, getErr := s.GetTransactionByIdempotencyKey(ctx, newTx.IdempotencyKey)
			if getErr != nil {
				return nil, false, fmt.Errorf("failed to fetch existing transaction for key %s: %w", newTx.IdempotencyKey, getErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to put transaction: %w", err)
	}

	return newTx, true, nil
}
