// Package api holds the request and response types of the HTTP surface.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// TransactionType defines the type of a transaction as exposed by the API.
type TransactionType string

// TransactionStatus defines the status of a transaction as exposed by the API.
type TransactionStatus string

// NewTransfer is the request body for scheduling a token transfer.
type NewTransfer struct {
	SenderId       string              `json:"sender_id"`
	RecipientEmail openapi_types.Email `json:"recipient_email"`
	Amount         int64               `json:"amount"`
	Message        string              `json:"message"`
}

// NewPurchase is the request body for a simulated token purchase.
type NewPurchase struct {
	UserId string `json:"user_id"`
	Amount int64  `json:"amount"`
}

// NewRedemption is the request body for redeeming a reward.
type NewRedemption struct {
	UserId string `json:"user_id"`
}

// NewAccount is the request body for creating an account.
type NewAccount struct {
	Email openapi_types.Email `json:"email"`
}

// NewReward is the request body for adding a reward to the catalog.
type NewReward struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	TokenCost   int64  `json:"token_cost"`
	Stock       int64  `json:"stock"`
	IsActive    bool   `json:"is_active"`
}

// RedemptionDetails is the payload attached to REDEEM transactions.
type RedemptionDetails struct {
	RewardId       string `json:"reward_id"`
	RewardName     string `json:"reward_name"`
	RedemptionCode string `json:"redemption_code"`
}

// Transaction is one ledger row as exposed by the API.
type Transaction struct {
	Id          string             `json:"id"`
	SenderId    string             `json:"sender_id"`
	RecipientId string             `json:"recipient_id"`
	Amount      int64              `json:"amount"`
	Message     string             `json:"message,omitempty"`
	Type        TransactionType    `json:"type"`
	Status      TransactionStatus  `json:"status"`
	Redemption  *RedemptionDetails `json:"redemption,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Account represents a user's account and balance.
type Account struct {
	Id        string              `json:"id"`
	Email     openapi_types.Email `json:"email"`
	Balance   int64               `json:"balance"`
	CreatedAt time.Time           `json:"created_at"`
}

// Reward represents a catalog reward. Stock of -1 means unlimited.
type Reward struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	TokenCost   int64  `json:"token_cost"`
	Stock       int64  `json:"stock"`
	IsActive    bool   `json:"is_active"`
}

// TransferResponse is returned by a successful transfer or purchase.
type TransferResponse struct {
	NewBalance  int64        `json:"new_balance"`
	Transaction *Transaction `json:"transaction"`
}

// RedemptionResponse is returned by a successful redemption.
type RedemptionResponse struct {
	NewBalance     int64        `json:"new_balance"`
	RedemptionCode string       `json:"redemption_code"`
	Transaction    *Transaction `json:"transaction"`
}

// BalanceResponse is returned by the balance endpoint.
type BalanceResponse struct {
	UserId  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

// LeaderboardEntry is one aggregated leaderboard row.
type LeaderboardEntry struct {
	AccountId string `json:"account_id"`
	Total     int64  `json:"total"`
}
