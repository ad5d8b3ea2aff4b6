package dynamodb

import (
	"context"
	"errors"
	"testing"

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

func TestCommitTransaction(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		committed := &models.Transaction{
			UUID:           uuid.New(),
			IdempotencyKey: "ledger-key-1",
			State:          models.COMMITTED,
			ReferenceID:    "fulfillment-uuid",
			ReferenceType:  models.EnrollmentReferenceType,
		}
		committedAV, _ := attributevalue.MarshalMap(committed)

		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.UpdateItemInput) bool {
			return input.ReturnValues == types.ReturnValueAllNew
		})).Once().Return(&dynamodb.UpdateItemOutput{Attributes: committedAV}, nil)

		result, err := store.CommitTransaction(context.Background(), "ledger-key-1", "fulfillment-uuid", models.EnrollmentReferenceType)

		assert.NoError(t, err)
		assert.Equal(t, models.COMMITTED, result.State)
		assert.Equal(t, "fulfillment-uuid", result.ReferenceID)
		assert.Equal(t, models.EnrollmentReferenceType, result.ReferenceType)
		mockClient.AssertExpectations(t)
	})

	t.Run("Not Pending", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).
			Return(nil, &types.ConditionalCheckFailedException{})

		_, err := store.CommitTransaction(context.Background(), "ledger-key-1", "ref", models.EnrollmentReferenceType)

		assert.ErrorIs(t, err, storage.ErrTransactionNotPending)
	})

	t.Run("Update Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, TransactionsTableName: "transactions"}

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).
			Return(nil, errors.New("throughput exceeded"))

		_, err := store.CommitTransaction(context.Background(), "ledger-key-1", "ref", models.EnrollmentReferenceType)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to commit transaction")
	})
}
