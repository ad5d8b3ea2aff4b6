package dynamodb

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/subsidy-redemptions/pkg/models"
	"github.com/chris/subsidy-redemptions/pkg/storage"
	"github.com/chris/subsidy-redemptions/pkg/storage/dynamodb/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetTransactionByIdempotencyKey(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		tx := &models.Transaction{UUID: uuid.New(), IdempotencyKey: "ledger-key-1", State: models.CREATED}
		txAV, _ := attributevalue.MarshalMap(tx)
		mockClient.On("GetItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.GetItemInput) bool {
			// Reads after a lost conditional-write race must be strongly consistent.
			return input.ConsistentRead != nil && *input.ConsistentRead
		})).Return(&dynamodb.GetItemOutput{Item: txAV}, nil)

		result, err := store.GetTransactionByIdempotencyKey(context.Background(), "ledger-key-1")

		assert.NoError(t, err)
		assert.Equal(t, tx.UUID, result.UUID)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).
			Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.GetTransactionByIdempotencyKey(context.Background(), "missing")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestGetTransaction(t *testing.T) {
	t.Run("Found Via Index", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		tx := &models.Transaction{UUID: uuid.New(), IdempotencyKey: "ledger-key-1"}
		txAV, _ := attributevalue.MarshalMap(tx)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return input.IndexName != nil && *input.IndexName == uuidIndex
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{txAV}}, nil)

		result, err := store.GetTransaction(context.Background(), tx.UUID)

		assert.NoError(t, err)
		assert.Equal(t, tx.UUID, result.UUID)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("Query", mock.Anything, mock.Anything).
			Return(&dynamodb.QueryOutput{}, nil)

		_, err := store.GetTransaction(context.Background(), uuid.New())

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestFindCommittedRedemption(t *testing.T) {
	subsidyUUID := uuid.New()

	t.Run("Found On Later Page", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		tx := &models.Transaction{UUID: uuid.New(), SubsidyUUID: subsidyUUID, State: models.COMMITTED}
		txAV, _ := attributevalue.MarshalMap(tx)

		// First page is emptied by the filter but carries a continuation key.
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return input.ExclusiveStartKey == nil
		})).Once().Return(&dynamodb.QueryOutput{
			Items:            nil,
			LastEvaluatedKey: map[string]types.AttributeValue{"idempotency_key": &types.AttributeValueMemberS{Value: "cursor"}},
		}, nil)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return input.ExclusiveStartKey != nil
		})).Once().Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{txAV}}, nil)

		result, err := store.FindCommittedRedemption(context.Background(), subsidyUUID, "12345", "course-v1:edX+DemoX+Demo")

		assert.NoError(t, err)
		assert.Equal(t, tx.UUID, result.UUID)
		mockClient.AssertExpectations(t)
	})

	t.Run("Exhausted Pages", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("Query", mock.Anything, mock.Anything).
			Return(&dynamodb.QueryOutput{}, nil)

		_, err := store.FindCommittedRedemption(context.Background(), subsidyUUID, "12345", "course-v1:edX+DemoX+Demo")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestCurrentBalance(t *testing.T) {
	sub := &models.Subsidy{UUID: uuid.New(), StartingBalance: 20000}

	quantityItem := func(q int64) map[string]types.AttributeValue {
		item, _ := attributevalue.MarshalMap(struct {
			Quantity int64 `dynamodbav:"quantity"`
		}{Quantity: q})
		return item
	}

	t.Run("Sums Committed Quantities Across Pages", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return input.ExclusiveStartKey == nil
		})).Once().Return(&dynamodb.QueryOutput{
			Items:            []map[string]types.AttributeValue{quantityItem(-14900)},
			LastEvaluatedKey: map[string]types.AttributeValue{"idempotency_key": &types.AttributeValueMemberS{Value: "cursor"}},
		}, nil)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return input.ExclusiveStartKey != nil
		})).Once().Return(&dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{quantityItem(-2500)},
		}, nil)

		balance, err := store.CurrentBalance(context.Background(), sub)

		assert.NoError(t, err)
		assert.Equal(t, int64(2600), balance)
		mockClient.AssertExpectations(t)
	})

	t.Run("Empty Ledger Is Starting Balance", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("Query", mock.Anything, mock.Anything).
			Return(&dynamodb.QueryOutput{}, nil)

		balance, err := store.CurrentBalance(context.Background(), sub)

		assert.NoError(t, err)
		assert.Equal(t, int64(20000), balance)
	})
}

func TestGetStuckTransactions(t *testing.T) {
	stuckItem := func() map[string]types.AttributeValue {
		tx := &models.Transaction{
			UUID:           uuid.New(),
			IdempotencyKey: "ledger-key-" + uuid.NewString(),
			State:          models.CREATED,
			CreatedAt:      time.Now().UTC().Add(-time.Hour),
		}
		item, _ := attributevalue.MarshalMap(tx)
		return item
	}

	t.Run("Cutoff Is Epoch Seconds", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		maxAge := 20 * time.Minute
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			cutoff, ok := input.ExpressionAttributeValues[":cutoff"].(*types.AttributeValueMemberN)
			if !ok {
				return false
			}
			epoch, err := strconv.ParseInt(cutoff.Value, 10, 64)
			if err != nil {
				return false
			}
			want := time.Now().UTC().Add(-maxAge).Unix()
			return epoch >= want-5 && epoch <= want
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{stuckItem()}}, nil)

		stuck, err := store.GetStuckTransactions(context.Background(), maxAge)

		assert.NoError(t, err)
		assert.Len(t, stuck, 1)
		mockClient.AssertExpectations(t)
	})

	t.Run("Follows Pagination", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return input.ExclusiveStartKey == nil
		})).Once().Return(&dynamodb.QueryOutput{
			Items:            []map[string]types.AttributeValue{stuckItem()},
			LastEvaluatedKey: map[string]types.AttributeValue{"idempotency_key": &types.AttributeValueMemberS{Value: "cursor"}},
		}, nil)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return input.ExclusiveStartKey != nil
		})).Once().Return(&dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{stuckItem(), stuckItem()},
		}, nil)

		stuck, err := store.GetStuckTransactions(context.Background(), 20*time.Minute)

		assert.NoError(t, err)
		assert.Len(t, stuck, 3)
		mockClient.AssertExpectations(t)
	})
}
