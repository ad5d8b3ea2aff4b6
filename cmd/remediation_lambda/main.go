package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/subsidy-redemptions/pkg/api"
	"github.com/chris/subsidy-redemptions/pkg/mapping"
	"github.com/chris/subsidy-redemptions/pkg/models"
	"github.com/chris/subsidy-redemptions/pkg/storage"
	dydbstore "github.com/chris/subsidy-redemptions/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

var store storage.Storage

func init() {
	// Load environment variables from .env file (useful for local testing).
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize dependencies once.
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	transactionsTable := os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME")
	subsidiesTable := os.Getenv("DYNAMODB_SUBSIDIES_TABLE_NAME")

	if transactionsTable == "" || subsidiesTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	store = dydbstore.New(dbClient, transactionsTable, subsidiesTable)
}

// HandleRequest processes SQS messages and rolls back abandoned transactions.
func HandleRequest(ctx context.Context, sqsEvent awsevents.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var apiTx api.Transaction
		if err := json.Unmarshal([]byte(message.Body), &apiTx); err != nil {
			log.Printf("ERROR: failed to unmarshal transaction from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message, which is appropriate here.
			return err
		}
		tx := mapping.ToDomainTransaction(&apiTx)

		// Re-read the row before acting on it. A transaction may have been
		// committed or rolled back between enqueue and processing.
		current, err := store.GetTransactionByIdempotencyKey(ctx, tx.IdempotencyKey)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				log.Printf("Transaction %s already rolled back, skipping", tx.UUID)
				continue
			}
			log.Printf("ERROR: failed to look up transaction %s: %v", tx.UUID, err)
			return err
		}
		if current.State == models.COMMITTED {
			log.Printf("Transaction %s is committed, skipping", tx.UUID)
			continue
		}

		log.Printf("Attempting to roll back transaction %s", tx.UUID)

		if err := store.RollbackTransaction(ctx, tx.IdempotencyKey); err != nil {
			if errors.Is(err, storage.ErrTransactionNotPending) {
				// Committed in the window between our read and the delete.
				log.Printf("Transaction %s is no longer pending, skipping", tx.UUID)
				continue
			}
			log.Printf("ERROR: failed to roll back transaction %s: %v", tx.UUID, err)
			// In a production system, persistent failures would be sent to a DLQ.
			return err
		}

		log.Printf("Successfully rolled back transaction %s", tx.UUID)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
