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

// GetTransactionByIdempotencyKey retrieves a transaction by its unique
// idempotency key. Reads are strongly consistent because callers use this
// immediately after losing a conditional-write race.
func (s *Store) GetTransactionByIdempotencyKey(ctx context.Context, idempotencyKey string) (*models.Transaction, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key: map[string]types.AttributeValue{
			"idempotency_key": &types.AttributeValueMemberS{Value: idempotencyKey},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, storage.ErrNotFound
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(result.Item, &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}

	return &tx, nil
}

// GetTransaction retrieves a transaction by its UUID via the uuid GSI.
func (s *Store) GetTransaction(ctx context.Context, txUUID uuid.UUID) (*models.Transaction, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(uuidIndex),
		KeyConditionExpression: aws.String("#uuid = :uuid"),
		ExpressionAttributeNames: map[string]string{
			"#uuid": "uuid",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uuid": &types.AttributeValueMemberS{Value: txUUID.String()},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction by uuid: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, storage.ErrNotFound
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(result.Items[0], &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}

	return &tx, nil
}
