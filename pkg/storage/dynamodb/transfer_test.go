package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/perkwise/token-ledger/pkg/models"
	"github.com/perkwise/token-ledger/pkg/storage"
	"github.com/perkwise/token-ledger/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTransferTokens(t *testing.T) {
	sender := &models.Account{Id: "alice", Email: "alice@example.com", Balance: 20, Version: 3}
	recipient := &models.Account{Id: "bob", Email: "bob@example.com", Balance: 5, Version: 1}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts", TransactionsTableName: "transactions"}

		// Mock GetAccount calls for both sides.
		senderAV, _ := attributevalue.MarshalMap(sender)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: senderAV}, nil).Once()
		recipientAV, _ := attributevalue.MarshalMap(recipient)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: recipientAV}, nil).Once()

		var input *dynamodb.TransactWriteItemsInput
		mockClient.On("TransactWriteItems", mock.Anything, mock.AnythingOfType("*dynamodb.TransactWriteItemsInput")).
			Run(func(args mock.Arguments) {
				input = args.Get(1).(*dynamodb.TransactWriteItemsInput)
			}).
			Return(&dynamodb.TransactWriteItemsOutput{}, nil).Once()

		updatedSender, tx, err := store.TransferTokens(context.Background(), "alice", "bob", 7, "thanks!")

		assert.NoError(t, err)
		assert.Equal(t, int64(13), updatedSender.Balance)
		assert.Equal(t, int64(4), updatedSender.Version)
		assert.Equal(t, models.SEND, tx.Type)
		assert.Equal(t, models.COMPLETED, tx.Status)
		assert.Equal(t, int64(7), tx.Amount)
		assert.Equal(t, "thanks!", tx.Message)

		// Debit, credit and append commit as one unit, in that order.
		assert.Len(t, input.TransactItems, 3)
		assert.NotNil(t, input.TransactItems[0].Update)
		assert.Equal(t, "balance >= :amount AND version = :version", *input.TransactItems[0].Update.ConditionExpression)
		assert.NotNil(t, input.TransactItems[1].Update)
		assert.NotNil(t, input.TransactItems[2].Put)
		mockClient.AssertExpectations(t)
	})

	t.Run("Sender Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil).Once()

		_, _, err := store.TransferTokens(context.Background(), "ghost", "bob", 7, "hi")

		assert.ErrorIs(t, err, storage.ErrAccountNotFound)
		mockClient.AssertExpectations(t)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts", TransactionsTableName: "transactions"}

		senderAV, _ := attributevalue.MarshalMap(sender)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: senderAV}, nil).Once()
		recipientAV, _ := attributevalue.MarshalMap(recipient)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: recipientAV}, nil).Once()

		// The debit condition fails and the old item shows a balance below the
		// amount: a concurrent writer spent the funds first.
		drained := &models.Account{Id: "alice", Balance: 10, Version: 4}
		drainedAV, _ := attributevalue.MarshalMap(drained)
		cancelled := &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("ConditionalCheckFailed"), Item: drainedAV},
				{Code: aws.String("None")},
				{Code: aws.String("None")},
			},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, cancelled).Once()

		_, _, err := store.TransferTokens(context.Background(), "alice", "bob", 15, "hi")

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		mockClient.AssertExpectations(t)
	})

	t.Run("Lost Version Race Is Retryable", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts", TransactionsTableName: "transactions"}

		senderAV, _ := attributevalue.MarshalMap(sender)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: senderAV}, nil).Once()
		recipientAV, _ := attributevalue.MarshalMap(recipient)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: recipientAV}, nil).Once()

		// The old item still covers the amount, so the failed condition was the
		// version check, not the balance check.
		bumped := &models.Account{Id: "alice", Balance: 20, Version: 4}
		bumpedAV, _ := attributevalue.MarshalMap(bumped)
		cancelled := &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("ConditionalCheckFailed"), Item: bumpedAV},
				{Code: aws.String("None")},
				{Code: aws.String("None")},
			},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, cancelled).Once()

		_, _, err := store.TransferTokens(context.Background(), "alice", "bob", 7, "hi")

		assert.ErrorIs(t, err, storage.ErrConcurrencyConflict)
		mockClient.AssertExpectations(t)
	})

	t.Run("Recipient Version Race", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts", TransactionsTableName: "transactions"}

		senderAV, _ := attributevalue.MarshalMap(sender)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: senderAV}, nil).Once()
		recipientAV, _ := attributevalue.MarshalMap(recipient)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: recipientAV}, nil).Once()

		cancelled := &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("None")},
				{Code: aws.String("ConditionalCheckFailed")},
				{Code: aws.String("None")},
			},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, cancelled).Once()

		_, _, err := store.TransferTokens(context.Background(), "alice", "bob", 7, "hi")

		assert.ErrorIs(t, err, storage.ErrConcurrencyConflict)
		mockClient.AssertExpectations(t)
	})

	t.Run("Transaction Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts", TransactionsTableName: "transactions"}

		senderAV, _ := attributevalue.MarshalMap(sender)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: senderAV}, nil).Once()
		recipientAV, _ := attributevalue.MarshalMap(recipient)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: recipientAV}, nil).Once()

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, errors.New("throttled")).Once()

		_, _, err := store.TransferTokens(context.Background(), "alice", "bob", 7, "hi")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute transfer transaction")
		mockClient.AssertExpectations(t)
	})
}
