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

// CreateReward adds a new reward to the catalog.
func (s *Store) CreateReward(ctx context.Context, reward *models.Reward) (*models.Reward, error) {
	if reward.Id == "" {
		reward.Id = uuid.New().String()
	}
	reward.Version = 1
	reward.CreatedAt = time.Now()

	rewardAV, err := attributevalue.MarshalMap(reward)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reward: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.RewardsTableName),
		Item:                rewardAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("reward %s: %w", reward.Id, storage.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create reward in DynamoDB: %w", wrapUnavailable(err))
	}

	return reward, nil
}

// GetReward retrieves a reward from DynamoDB by its ID.
func (s *Store) GetReward(ctx context.Context, rewardID string) (*models.Reward, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": rewardID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reward ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.RewardsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get reward from DynamoDB: %w", wrapUnavailable(err))
	}

	if result.Item == nil {
		return nil, fmt.Errorf("reward %s: %w", rewardID, storage.ErrRewardNotFound)
	}

	var reward models.Reward
	if err := attributevalue.UnmarshalMap(result.Item, &reward); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reward: %w", err)
	}

	return &reward, nil
}

// ListRewards retrieves active rewards, optionally restricted to a category.
func (s *Store) ListRewards(ctx context.Context, category string) ([]models.Reward, error) {
	var items []map[string]types.AttributeValue

	if category != "" {
		input := &dynamodb.QueryInput{
			TableName:              aws.String(s.RewardsTableName),
			IndexName:              aws.String(categoryIndex),
			KeyConditionExpression: aws.String("category = :category"),
			FilterExpression:       aws.String("is_active = :active"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":category": &types.AttributeValueMemberS{Value: category},
				":active":   &types.AttributeValueMemberBOOL{Value: true},
			},
		}
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query rewards by category: %w", wrapUnavailable(err))
		}
		items = result.Items
	} else {
		input := &dynamodb.ScanInput{
			TableName:        aws.String(s.RewardsTableName),
			FilterExpression: aws.String("is_active = :active"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":active": &types.AttributeValueMemberBOOL{Value: true},
			},
		}
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rewards table: %w", wrapUnavailable(err))
		}
		items = result.Items
	}

	var rewards []models.Reward
	if err := attributevalue.UnmarshalListOfMaps(items, &rewards); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rewards: %w", err)
	}

	return rewards, nil
}
