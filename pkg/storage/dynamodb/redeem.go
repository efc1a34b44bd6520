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

// RedeemReward commits the balance debit, the stock decrement and the REDEEM
// transaction append as one atomic unit. Partial application is never
// observable: either all three items commit or none does.
func (s *Store) RedeemReward(ctx context.Context, userID, rewardID string) (*models.Account, *models.Transaction, error) {
	// 1. Fetch current state for versions and pre-write validation.
	account, err := s.GetAccount(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get account for redemption: %w", err)
	}
	reward, err := s.GetReward(ctx, rewardID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get reward for redemption: %w", err)
	}

	// 2. Reject before writing anything. The transact conditions below guard
	// the same invariants against concurrent writers.
	if !reward.Available() {
		return nil, nil, fmt.Errorf("reward %s: %w", rewardID, storage.ErrRewardUnavailable)
	}
	if account.Balance < reward.TokenCost {
		return nil, nil, fmt.Errorf("balance %d below cost %d: %w", account.Balance, reward.TokenCost, storage.ErrInsufficientFunds)
	}

	// 3. Build the REDEEM row with its tagged payload. Amount is negative.
	tx := &models.Transaction{
		Id:          uuid.New().String(),
		SenderId:    userID,
		RecipientId: userID,
		Amount:      -reward.TokenCost,
		Type:        models.REDEEM,
		Status:      models.COMPLETED,
		Redemption: &models.RedeemDetails{
			RewardId:       reward.Id,
			RewardName:     reward.Name,
			RedemptionCode: models.NewRedemptionCode(),
		},
		CreatedAt: time.Now(),
	}

	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}
	costAV, err := attributevalue.Marshal(reward.TokenCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal token cost: %w", err)
	}

	// 4. Construct the TransactWriteItems input: debit, stock guard, append.
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Debit the account by the token cost.
				Update: &types.Update{
					TableName: aws.String(s.AccountsTableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: userID},
					},
					UpdateExpression:    aws.String("SET balance = balance - :cost, version = version + :inc"),
					ConditionExpression: aws.String("balance >= :cost AND version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":cost":    costAV,
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", account.Version)},
						":inc":     &types.AttributeValueMemberN{Value: "1"},
					},
					ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
				},
			},
			// Operation 2: Decrement limited stock, or assert availability
			// for unlimited rewards without touching the counter.
			s.rewardStockItem(reward),
			{
				// Operation 3: Append the REDEEM transaction.
				Put: &types.Put{
					TableName:           aws.String(s.TransactionsTableName),
					Item:                txAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	// 5. Execute the transaction.
	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return nil, nil, classifyRedeemCancellation(tce, reward.TokenCost)
		}
		return nil, nil, fmt.Errorf("failed to execute redemption transaction: %w", wrapUnavailable(err))
	}

	account.Balance -= reward.TokenCost
	account.Version++
	return account, tx, nil
}

// rewardStockItem builds the per-reward member of the redemption transact
// write. Limited stock is decremented under a "stock >= 1" condition;
// unlimited stock (the -1 sentinel) is never decremented, only condition
// checked so a concurrent deactivation still cancels the whole unit.
func (s *Store) rewardStockItem(reward *models.Reward) types.TransactWriteItem {
	key := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: reward.Id},
	}
	versionAV := &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", reward.Version)}

	if reward.Stock == models.UnlimitedStock {
		return types.TransactWriteItem{
			ConditionCheck: &types.ConditionCheck{
				TableName:           aws.String(s.RewardsTableName),
				Key:                 key,
				ConditionExpression: aws.String("is_active = :active AND stock = :unlimited AND version = :version"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":active":    &types.AttributeValueMemberBOOL{Value: true},
					":unlimited": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", models.UnlimitedStock)},
					":version":   versionAV,
				},
				ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
			},
		}
	}

	return types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(s.RewardsTableName),
			Key:                 key,
			UpdateExpression:    aws.String("SET stock = stock - :one, version = version + :one"),
			ConditionExpression: aws.String("is_active = :active AND stock >= :one AND version = :version"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":one":     &types.AttributeValueMemberN{Value: "1"},
				":active":  &types.AttributeValueMemberBOOL{Value: true},
				":version": versionAV,
			},
			ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
		},
	}
}

// classifyRedeemCancellation maps a cancelled redemption. Item order is
// account debit, reward stock, transaction append.
func classifyRedeemCancellation(tce *types.TransactionCanceledException, cost int64) error {
	if len(tce.CancellationReasons) < 2 {
		return fmt.Errorf("transaction cancelled with no reasons: %w", storage.ErrConcurrencyConflict)
	}

	if debitReason := tce.CancellationReasons[0]; conditionFailed(debitReason) {
		if debitReason.Item != nil {
			var account models.Account
			if err := attributevalue.UnmarshalMap(debitReason.Item, &account); err == nil && account.Balance < cost {
				return storage.ErrInsufficientFunds
			}
		}
		return storage.ErrConcurrencyConflict
	}

	if stockReason := tce.CancellationReasons[1]; conditionFailed(stockReason) {
		if stockReason.Item != nil {
			var reward models.Reward
			if err := attributevalue.UnmarshalMap(stockReason.Item, &reward); err == nil && !reward.Available() {
				return storage.ErrRewardUnavailable
			}
		}
		return storage.ErrConcurrencyConflict
	}

	return fmt.Errorf("transaction cancelled: %w", storage.ErrConcurrencyConflict)
}
