package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/subsidy-redemptions/pkg/mapping"
	"github.com/chris/subsidy-redemptions/pkg/remediation"
	"github.com/chris/subsidy-redemptions/pkg/storage"
	dydbstore "github.com/chris/subsidy-redemptions/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

var store storage.Storage
var queue remediation.Queue

// Transactions sitting in the created state past this age were abandoned by
// a crashed redeem call and need compensating rollback.
const stuckTransactionThreshold = 20 * time.Minute

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	sqsClient := sqs.NewFromConfig(cfg)

	remediationQueueURL := os.Getenv("SQS_REMEDIATION_QUEUE_URL")
	if remediationQueueURL == "" {
		log.Fatal("SQS_REMEDIATION_QUEUE_URL environment variable not set")
	}
	queue = remediation.NewSQSQueue(sqsClient, remediationQueueURL)

	transactionsTable := os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME")
	subsidiesTable := os.Getenv("DYNAMODB_SUBSIDIES_TABLE_NAME")

	store = dydbstore.New(dbClient, transactionsTable, subsidiesTable)
}

// HandleRequest is triggered by an EventBridge Schedule.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting reconciliation process for stuck transactions...")

	stuckTxs, err := store.GetStuckTransactions(ctx, stuckTransactionThreshold)
	if err != nil {
		log.Printf("ERROR: failed to get stuck transactions: %v", err)
		return err
	}

	if len(stuckTxs) == 0 {
		log.Println("No stuck transactions found.")
		return nil
	}

	log.Printf("Found %d stuck transactions. Enqueuing them for rollback...", len(stuckTxs))

	for _, tx := range stuckTxs {
		apiTx := mapping.ToApiTransaction(&tx)
		if err := queue.EnqueueTransaction(ctx, apiTx); err != nil {
			log.Printf("ERROR: failed to enqueue transaction %s: %v", tx.UUID, err)
			// Continue to the next transaction, don't let one failure stop the whole batch.
			continue
		}
		log.Printf("Successfully enqueued transaction %s", tx.UUID)
	}

	log.Println("Reconciliation process finished.")
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
