package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/perkwise/token-ledger/pkg/storage"
)

// DynamoDBAPI captures the subset of the DynamoDB client used by the Store.
// Mocks for tests are generated with mockery.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client                DynamoDBAPI
	AccountsTableName     string
	RewardsTableName      string
	TransactionsTableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, accountsTable, rewardsTable, transactionsTable string) *Store {
	return &Store{
		Client:                client,
		AccountsTableName:     accountsTable,
		RewardsTableName:      rewardsTable,
		TransactionsTableName: transactionsTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

// Secondary indexes. Table definitions live in infrastructure, these names
// are the contract the queries rely on.
const (
	emailIndex     = "email-index"
	senderIndex    = "sender_id-created_at-index"
	recipientIndex = "recipient_id-created_at-index"
	typeIndex      = "type-created_at-index"
	statusIndex    = "status-created_at-index"
	categoryIndex  = "category-index"
)

// wrapUnavailable tags timeouts and cancellations as retryable store errors so
// callers never mistake them for applied writes.
func wrapUnavailable(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", storage.ErrStoreUnavailable, err)
	}
	return err
}
