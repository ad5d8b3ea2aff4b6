package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/subsidy-redemptions/pkg/enrollment"
	"github.com/chris/subsidy-redemptions/pkg/events"
	"github.com/chris/subsidy-redemptions/pkg/handlers/content"
	"github.com/chris/subsidy-redemptions/pkg/handlers/subsidies"
	"github.com/chris/subsidy-redemptions/pkg/handlers/transactions"
	appmiddleware "github.com/chris/subsidy-redemptions/pkg/middleware"
	"github.com/chris/subsidy-redemptions/pkg/pricing"
	"github.com/chris/subsidy-redemptions/pkg/remediation"
	dydbstore "github.com/chris/subsidy-redemptions/pkg/storage/dynamodb"
	"github.com/chris/subsidy-redemptions/pkg/subsidy"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// AWS Session
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
	store := dydbstore.New(dbClient, transactionsTable, subsidiesTable)

	// Pricing resolver backed by the enterprise catalog service.
	catalogBaseURL := os.Getenv("CATALOG_BASE_URL")
	if catalogBaseURL == "" {
		log.Fatal("CATALOG_BASE_URL environment variable not set")
	}
	catalog := pricing.NewCatalogClient(catalogBaseURL, nil)
	resolver := pricing.NewResolver(catalog, pricing.DefaultCacheSize)

	// Enrollment provisioner backed by the LMS.
	lmsBaseURL := os.Getenv("LMS_BASE_URL")
	if lmsBaseURL == "" {
		log.Fatal("LMS_BASE_URL environment variable not set")
	}
	provisioner := enrollment.NewClient(lmsBaseURL, nil)

	// SQS queues for lifecycle events and rollback remediation. Both are
	// optional; the engine falls back to no-ops when they are unset.
	sqsClient := sqs.NewFromConfig(cfg)
	var publisher events.Publisher
	if url := os.Getenv("SQS_EVENTS_QUEUE_URL"); url != "" {
		publisher = events.NewSQSPublisher(sqsClient, url)
	}
	var queue remediation.Queue
	if url := os.Getenv("SQS_REMEDIATION_QUEUE_URL"); url != "" {
		queue = remediation.NewSQSQueue(sqsClient, url)
	}

	engine := subsidy.NewEngine(store, resolver, provisioner, publisher, queue)

	transactionsHandler := transactions.NewTransactionsHandler(store, engine)
	subsidiesHandler := subsidies.NewSubsidiesHandler(store, engine)
	contentHandler := content.NewContentHandler(catalog)

	// Create a new Chi router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(appmiddleware.NewStructuredLogger(logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/subsidies/", subsidiesHandler.ListSubsidies)
		r.Post("/subsidies/", subsidiesHandler.CreateSubsidy)
		r.Get("/subsidies/{subsidyUuid}/", subsidiesHandler.GetSubsidy)
		r.Get("/subsidies/{subsidyUuid}/can_redeem/", subsidiesHandler.CanRedeem)
		r.Get("/subsidies/{subsidyUuid}/transactions/", transactionsHandler.ListTransactions)
		r.Post("/transactions/", transactionsHandler.Redeem)
		r.Get("/transactions/{transactionUuid}/", transactionsHandler.GetTransaction)
		r.Get("/content-metadata/{contentIdentifier}/", contentHandler.GetContentMetadata)
	})

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	// Start the server
	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
