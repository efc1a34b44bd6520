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

// PurchaseTokens atomically credits the account and appends a COMPLETED
// PURCHASE transaction. Purchases are simulated credits, no gateway involved.
func (s *Store) PurchaseTokens(ctx context.Context, userID string, amount int64) (*models.Account, *models.Transaction, error) {
	account, err := s.GetAccount(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get account for purchase: %w", err)
	}

	tx := &models.Transaction{
		Id:          uuid.New().String(),
		SenderId:    userID,
		RecipientId: userID,
		Amount:      amount,
		Type:        models.PURCHASE,
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

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(s.AccountsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: userID},
					},
					UpdateExpression:    aws.String("SET balance = balance + :amount, version = version + :inc"),
					ConditionExpression: aws.String("version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount":  amountAV,
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", account.Version)},
						":inc":     &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(s.TransactionsTableName),
					Item:                txAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			// A credit has no shortfall to report, any failed condition is a
			// lost version race.
			return nil, nil, storage.ErrConcurrencyConflict
		}
		return nil, nil, fmt.Errorf("failed to execute purchase transaction: %w", wrapUnavailable(err))
	}

	account.Balance += amount
	account.Version++
	return account, tx, nil
}
