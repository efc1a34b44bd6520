package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/perkwise/token-ledger/pkg/handlers"
	"github.com/perkwise/token-ledger/pkg/handlers/leaderboard"
	"github.com/perkwise/token-ledger/pkg/ledger"
	custommiddleware "github.com/perkwise/token-ledger/pkg/middleware"
	"github.com/perkwise/token-ledger/pkg/notify"
	dydbstore "github.com/perkwise/token-ledger/pkg/storage/dynamodb"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := awsdynamodb.NewFromConfig(cfg)
	accountsTable := os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME")
	rewardsTable := os.Getenv("DYNAMODB_REWARDS_TABLE_NAME")
	transactionsTable := os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME")

	if accountsTable == "" || rewardsTable == "" || transactionsTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	// The store client is constructed once and injected; init and teardown
	// are explicit, no ambient connection state.
	store := dydbstore.New(dbClient, accountsTable, rewardsTable, transactionsTable)

	// Notification queue, consumed by the notifier lambda.
	var notifier notify.Notifier = &notify.NoOpNotifier{}
	if queueURL := os.Getenv("SQS_NOTIFICATIONS_QUEUE_URL"); queueURL != "" {
		notifier = notify.NewSQSNotifier(sqs.NewFromConfig(cfg), queueURL)
	} else {
		log.Println("SQS_NOTIFICATIONS_QUEUE_URL not set, notifications disabled")
	}

	// Core engines.
	ledgerEngine := ledger.NewLedgerEngine(store, store, notifier, 0)
	redemptionEngine := ledger.NewRedemptionEngine(store, 0)

	// HTTP surface.
	apiHandler := handlers.NewApiHandler(ledgerEngine, redemptionEngine, store)
	leaderboardHandler := leaderboard.NewLeaderboardHandler(store)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(custommiddleware.NewStructuredLogger(logger))
	apiHandler.Routes(router)
	router.Get("/leaderboard", leaderboardHandler.GetLeaderboard)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
