package dynamodb

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/perkwise/token-ledger/pkg/models"
	"github.com/perkwise/token-ledger/pkg/storage"
)

// GetTransaction retrieves a transaction from DynamoDB by its ID.
func (s *Store) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": txID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.TransactionsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction from DynamoDB: %w", wrapUnavailable(err))
	}

	if result.Item == nil {
		return nil, fmt.Errorf("transaction with ID %s not found", txID)
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(result.Item, &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}

	return &tx, nil
}

// ListUserTransactions retrieves the page of transactions where the account is
// sender or recipient. A transfer is stored once from the sender's side, so
// the recipient's history comes out of the same rows via the recipient index.
// Both index queries fetch limit+offset rows, the merged result is ordered by
// (created_at desc, id desc) and sliced for deterministic pagination.
func (s *Store) ListUserTransactions(ctx context.Context, userID string, limit, offset int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	fetch := int32(limit + offset)

	sent, err := s.queryUserIndex(ctx, senderIndex, "sender_id", userID, fetch)
	if err != nil {
		return nil, err
	}
	received, err := s.queryUserIndex(ctx, recipientIndex, "recipient_id", userID, fetch)
	if err != nil {
		return nil, err
	}

	// Merge and dedupe: a PURCHASE or REDEEM row has the user on both sides.
	seen := make(map[string]struct{}, len(sent)+len(received))
	merged := make([]models.Transaction, 0, len(sent)+len(received))
	for _, tx := range append(sent, received...) {
		if _, ok := seen[tx.Id]; ok {
			continue
		}
		seen[tx.Id] = struct{}{}
		merged = append(merged, tx)
	}

	sortNewestFirst(merged)

	if offset >= len(merged) {
		return []models.Transaction{}, nil
	}
	end := offset + limit
	if end > len(merged) {
		end = len(merged)
	}
	return merged[offset:end], nil
}

func (s *Store) queryUserIndex(ctx context.Context, index, keyAttr, userID string, limit int32) ([]models.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String(fmt.Sprintf("%s = :userID", keyAttr)),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userID": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false), // newest first
		Limit:            aws.Int32(limit),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", index, wrapUnavailable(err))
	}

	var transactions []models.Transaction
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &transactions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
	}

	return transactions, nil
}

// ListTransactionsByStatus retrieves the most recent transactions in the
// given status via the status index, newest first.
func (s *Store) ListTransactionsByStatus(ctx context.Context, status models.TransactionStatus, limit int32) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(statusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(limit),
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by status: %w", wrapUnavailable(err))
	}

	var transactions []models.Transaction
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &transactions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
	}

	return transactions, nil
}

// AggregateLeaderboard sums SEND amounts grouped by sender or recipient. The
// type index is paged through in full and aggregated in memory; ordering is
// total descending with ties broken by account id ascending.
func (s *Store) AggregateLeaderboard(ctx context.Context, kind storage.LeaderboardKind, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	totals := make(map[string]int64)
	var startKey map[string]types.AttributeValue

	for {
		input := &dynamodb.QueryInput{
			TableName:              aws.String(s.TransactionsTableName),
			IndexName:              aws.String(typeIndex),
			KeyConditionExpression: aws.String("#type = :send"),
			ExpressionAttributeNames: map[string]string{
				"#type": "type",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":send": &types.AttributeValueMemberS{Value: string(models.SEND)},
			},
			ExclusiveStartKey: startKey,
		}

		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query transactions for leaderboard: %w", wrapUnavailable(err))
		}

		var transactions []models.Transaction
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &transactions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
		}

		for _, tx := range transactions {
			if kind == storage.LeaderboardReceived {
				totals[tx.RecipientId] += tx.Amount
			} else {
				totals[tx.SenderId] += tx.Amount
			}
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	entries := make([]models.LeaderboardEntry, 0, len(totals))
	for accountID, total := range totals {
		entries = append(entries, models.LeaderboardEntry{AccountId: accountID, Total: total})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		return entries[i].AccountId < entries[j].AccountId
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// sortNewestFirst orders transactions by (created_at desc, id desc).
func sortNewestFirst(transactions []models.Transaction) {
	sort.Slice(transactions, func(i, j int) bool {
		if !transactions[i].CreatedAt.Equal(transactions[j].CreatedAt) {
			return transactions[i].CreatedAt.After(transactions[j].CreatedAt)
		}
		return transactions[i].Id > transactions[j].Id
	})
}
