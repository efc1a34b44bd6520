package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/perkwise/token-ledger/pkg/models"
	"github.com/perkwise/token-ledger/pkg/storage"
)

// TransferTokens atomically debits the sender, credits the recipient and
// appends one COMPLETED SEND transaction. The debit condition
// ("balance >= amount AND version = v") closes the check-then-act race: the
// balance read before the transact call only fetches versions, the condition
// is what guards the mutation.
func (s *Store) TransferTokens(ctx context.Context, senderID, recipientID string, amount int64, message string) (*models.Account, *models.Transaction, error) {
	// 1. Fetch both accounts for their optimistic-lock versions.
	sender, err := s.GetAccount(ctx, senderID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sender's account: %w", err)
	}
	recipient, err := s.GetAccount(ctx, recipientID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get recipient's account: %w", err)
	}

	// 2. Build the transaction row. It is written COMPLETED or not at all.
	tx := &models.Transaction{
		Id:          uuid.New().String(),
		SenderId:    senderID,
		RecipientId: recipientID,
		Amount:      amount,
		Message:     message,
		Type:        models.SEND,
		Status:      models.COMPLETED,
		CreatedAt:   time.Now(),
	}

	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}
	amountAV, err := attributevalue.Marshal(amount)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal amount: %w", err)
	}

	// 3. Construct the TransactWriteItems input.
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Debit the sender.
				Update: &types.Update{
					TableName: aws.String(s.AccountsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: senderID},
					},
					UpdateExpression:    aws.String("SET balance = balance - :amount, version = version + :inc"),
					ConditionExpression: aws.String("balance >= :amount AND version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount":  amountAV,
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", sender.Version)},
						":inc":     &types.AttributeValueMemberN{Value: "1"},
					},
					ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
				},
			},
			{
				// Operation 2: Credit the recipient.
				Update: &types.Update{
					TableName: aws.String(s.AccountsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: recipientID},
					},
					UpdateExpression:    aws.String("SET balance = balance + :amount, version = version + :inc"),
					ConditionExpression: aws.String("version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount":  amountAV,
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", recipient.Version)},
						":inc":     &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
			{
				// Operation 3: Append the SEND transaction.
				Put: &types.Put{
					TableName:           aws.String(s.TransactionsTableName),
					Item:                txAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	// 4. Execute the transaction.
	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return nil, nil, classifyDebitCancellation(tce, amount)
		}
		return nil, nil, fmt.Errorf("failed to execute transfer transaction: %w", wrapUnavailable(err))
	}

	sender.Balance -= amount
	sender.Version++
	return sender, tx, nil
}

// classifyDebitCancellation maps a cancelled transact-write whose first item
// debits an account. DynamoDB reports one reason per item in order; the old
// item returned on the failed condition check lets us tell a genuine
// shortfall from a lost version race, which the engines retry.
func classifyDebitCancellation(tce *types.TransactionCanceledException, needed int64) error {
	if len(tce.CancellationReasons) == 0 {
		return fmt.Errorf("transaction cancelled with no reasons: %w", storage.ErrConcurrencyConflict)
	}

	debitReason := tce.CancellationReasons[0]
	if conditionFailed(debitReason) {
		if debitReason.Item != nil {
			var account models.Account
			if err := attributevalue.UnmarshalMap(debitReason.Item, &account); err == nil && account.Balance < needed {
				return storage.ErrInsufficientFunds
			}
		}
		return storage.ErrConcurrencyConflict
	}

	// Any other failed item is a version race on the credited account or a
	// (practically impossible) duplicate transaction id.
	for _, reason := range tce.CancellationReasons {
		if conditionFailed(reason) {
			return storage.ErrConcurrencyConflict
		}
	}
	return fmt.Errorf("transaction cancelled: %w", storage.ErrConcurrencyConflict)
}

func conditionFailed(reason types.CancellationReason) bool {
	return reason.Code != nil && *reason.Code == "ConditionalCheckFailed"
}
