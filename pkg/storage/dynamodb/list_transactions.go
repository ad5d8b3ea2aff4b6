package dynamodb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/subsidy-redemptions/pkg/models"
	"github.com/google/uuid"
)

// ListTransactionsForSubsidy retrieves all transactions recorded against a
// subsidy's ledger, newest first.
func (s *Store) ListTransactionsForSubsidy(ctx context.Context, subsidyUUID uuid.UUID) ([]models.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(subsidyUUIDIndex),
		KeyConditionExpression: aws.String("subsidy_uuid = :subsidy"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":subsidy": &types.AttributeValueMemberS{Value: subsidyUUID.String()},
		},
		ScanIndexForward: aws.Bool(false), // Sort by created_at in descending order
	}

	var transactions []models.Transaction
	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query transactions for subsidy: %w", err)
		}

		var page []models.Transaction
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
		}
		transactions = append(transactions, page...)

		if result.LastEvaluatedKey == nil {
			return transactions, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}

// GetStuckTransactions retrieves transactions that have sat in the created
// state for longer than maxAge. The reconciliation sweep feeds these to the
// remediation queue.
func (s *Store) GetStuckTransactions(ctx context.Context, maxAge time.Duration) ([]models.Transaction, error) {
	// created_at is stored as epoch seconds, so the range condition compares
	// numerically.
	cutoff := time.Now().UTC().Add(-maxAge).Unix()

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(stateCreatedIndex),
		KeyConditionExpression: aws.String("#state = :state AND created_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#state": "state",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":state":  &types.AttributeValueMemberS{Value: string(models.CREATED)},
			":cutoff": &types.AttributeValueMemberN{Value: strconv.FormatInt(cutoff, 10)},
		},
	}

	var transactions []models.Transaction
	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query for stuck transactions: %w", err)
		}

		var page []models.Transaction
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal stuck transactions: %w", err)
		}
		transactions = append(transactions, page...)

		if result.LastEvaluatedKey == nil {
			return transactions, nil
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}
}
