package mapping

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/perkwise/token-ledger/pkg/api"
	"github.com/perkwise/token-ledger/pkg/models"
)

// ToApiTransaction converts a domain Transaction model to an API Transaction model.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	apiTx := &api.Transaction{
		Id:          tx.Id,
		SenderId:    tx.SenderId,
		RecipientId: tx.RecipientId,
		Amount:      tx.Amount,
		Message:     tx.Message,
		Type:        api.TransactionType(tx.Type),
		Status:      api.TransactionStatus(tx.Status),
		CreatedAt:   tx.CreatedAt,
	}
	if tx.Redemption != nil {
		apiTx.Redemption = &api.RedemptionDetails{
			RewardId:       tx.Redemption.RewardId,
			RewardName:     tx.Redemption.RewardName,
			RedemptionCode: tx.Redemption.RedemptionCode,
		}
	}
	return apiTx
}

// ToApiAccount converts a domain Account model to an API Account model.
func ToApiAccount(account *models.Account) *api.Account {
	return &api.Account{
		Id:        account.Id,
		Email:     openapi_types.Email(account.Email),
		Balance:   account.Balance,
		CreatedAt: account.CreatedAt,
	}
}

// ToDomainNewAccount converts an API NewAccount model to a domain Account model.
func ToDomainNewAccount(newAccount *api.NewAccount) *models.Account {
	return &models.Account{
		Email:   string(newAccount.Email),
		Balance: 0,
	}
}

// ToApiReward converts a domain Reward model to an API Reward model.
func ToApiReward(reward *models.Reward) *api.Reward {
	return &api.Reward{
		Id:          reward.Id,
		Name:        reward.Name,
		Description: reward.Description,
		Category:    reward.Category,
		TokenCost:   reward.TokenCost,
		Stock:       reward.Stock,
		IsActive:    reward.IsActive,
	}
}

// ToDomainNewReward converts an API NewReward model to a domain Reward model.
func ToDomainNewReward(newReward *api.NewReward) *models.Reward {
	return &models.Reward{
		Name:        newReward.Name,
		Description: newReward.Description,
		Category:    newReward.Category,
		TokenCost:   newReward.TokenCost,
		Stock:       newReward.Stock,
		IsActive:    newReward.IsActive,
	}
}

// ToApiLeaderboardEntry converts a domain LeaderboardEntry to its API model.
func ToApiLeaderboardEntry(entry *models.LeaderboardEntry) *api.LeaderboardEntry {
	return &api.LeaderboardEntry{
		AccountId: entry.AccountId,
		Total:     entry.Total,
	}
}
