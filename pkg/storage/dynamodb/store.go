package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/subsidy-redemptions/pkg/storage"
)

//go:generate mockery --name DynamoDBAPI --output ./mocks --outpkg mocks

// DynamoDBAPI captures the subset of the DynamoDB client used by the Store.
// Depending on this interface instead of *dynamodb.Client keeps the store
// mockable in tests.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Store implements the storage interfaces using AWS DynamoDB.
//
// Transactions table: partition key `idempotency_key`, with GSIs
// `uuid-index`, `subsidy_uuid-index` (sort key `created_at`), and
// `state-created_at-index`. Making the idempotency key the partition key is
// what lets a conditional Put serve as the atomic insert-or-fetch-existing
// primitive the redemption engine relies on.
//
// Subsidies table: partition key `uuid`, with GSIs `reference_id-index` and
// `enterprise_customer_uuid-index`.
type Store struct {
	Client                DynamoDBAPI
	TransactionsTableName string
	SubsidiesTableName    string
}

// New creates a new Store.
func New(client DynamoDBAPI, transactionsTable, subsidiesTable string) *Store {
	return &Store{
		Client:                client,
		TransactionsTableName: transactionsTable,
		SubsidiesTableName:    subsidiesTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

const (
	uuidIndex         = "uuid-index"
	subsidyUUIDIndex  = "subsidy_uuid-index"
	stateCreatedIndex = "state-created_at-index"
	referenceIDIndex  = "reference_id-index"
	customerUUIDIndex = "enterprise_customer_uuid-index"
)
