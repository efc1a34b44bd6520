package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/perkwise/token-ledger/pkg/models"
	"github.com/perkwise/token-ledger/pkg/storage"
	dydbstore "github.com/perkwise/token-ledger/pkg/storage/dynamodb"
)

var store storage.Storage

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := awsdynamodb.NewFromConfig(cfg)
	accountsTable := os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME")
	rewardsTable := os.Getenv("DYNAMODB_REWARDS_TABLE_NAME")
	transactionsTable := os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME")

	store = dydbstore.New(dbClient, accountsTable, rewardsTable, transactionsTable)
}

// HandleRequest is triggered by an EventBridge Schedule. It sweeps the store
// for states the atomic writes are supposed to make impossible: negative
// balances, negative limited stock, and transaction rows stuck outside
// COMPLETED. Finding one means a write path bypassed the ledger and needs
// investigating.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting ledger invariant audit...")

	accounts, err := store.ListAccounts(ctx)
	if err != nil {
		log.Printf("ERROR: failed to list accounts: %v", err)
		return err
	}

	violations := 0
	for _, account := range accounts {
		if account.Balance < 0 {
			violations++
			log.Printf("ERROR: account %s has negative balance %d", account.Id, account.Balance)
		}
	}

	rewards, err := store.ListRewards(ctx, "")
	if err != nil {
		log.Printf("ERROR: failed to list rewards: %v", err)
		return err
	}

	for _, reward := range rewards {
		if reward.Stock < 0 && reward.Stock != models.UnlimitedStock {
			violations++
			log.Printf("ERROR: reward %s has negative stock %d", reward.Id, reward.Stock)
		}
	}

	// Rows only ever commit COMPLETED; a PENDING or FAILED row means a write
	// path bypassed the atomic commit.
	for _, status := range []models.TransactionStatus{models.PENDING, models.FAILED} {
		stray, err := store.ListTransactionsByStatus(ctx, status, 100)
		if err != nil {
			log.Printf("ERROR: failed to list %s transactions: %v", status, err)
			return err
		}
		for _, tx := range stray {
			violations++
			log.Printf("ERROR: transaction %s persisted with status %s", tx.Id, tx.Status)
		}
	}

	if violations > 0 {
		return fmt.Errorf("ledger audit found %d invariant violations", violations)
	}

	log.Printf("Ledger audit passed: %d accounts, %d rewards checked", len(accounts), len(rewards))
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
