package storage

import (
	"context"

	"github.com/perkwise/token-ledger/pkg/models"
)

// RewardCatalog defines the interface for the reward catalog. Stock is only
// ever decremented by LedgerWriter.RedeemReward, as part of its atomic unit.
type RewardCatalog interface {
	// GetReward retrieves a reward by its ID.
	GetReward(ctx context.Context, rewardID string) (*models.Reward, error)

	// CreateReward adds a new reward to the catalog.
	CreateReward(ctx context.Context, reward *models.Reward) (*models.Reward, error)

	// ListRewards retrieves active rewards, optionally filtered by category.
	ListRewards(ctx context.Context, category string) ([]models.Reward, error)
}
