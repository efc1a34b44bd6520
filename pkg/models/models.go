package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransactionType classifies how a transaction moved tokens.
type TransactionType string

const (
	// SEND is a peer-to-peer transfer, recorded once from the sender's
	// perspective. The recipient's view is derived from the same row.
	SEND TransactionType = "SEND"
	// RECEIVE is the read-side view of a SEND row for its recipient. It is
	// never persisted as its own row.
	RECEIVE TransactionType = "RECEIVE"
	// PURCHASE is a simulated token purchase crediting a single account.
	PURCHASE TransactionType = "PURCHASE"
	// REDEEM is a debit against the reward catalog; its amount is negative.
	REDEEM TransactionType = "REDEEM"
)

// TransactionStatus defines the possible states of a transaction.
// Validation happens before anything is written and the atomic commit writes
// the row COMPLETED, so PENDING and FAILED rows are never materialized.
type TransactionStatus string

const (
	PENDING   TransactionStatus = "PENDING"
	COMPLETED TransactionStatus = "COMPLETED"
	FAILED    TransactionStatus = "FAILED"
)

// UnlimitedStock is the sentinel stock value for rewards without inventory
// limits. An unlimited reward is never decremented.
const UnlimitedStock int64 = -1

// Account holds a user's token balance. Balance is mutated only by the ledger
// engines and never goes negative. Version is the optimistic-locking counter
// bumped on every balance mutation.
type Account struct {
	Id        string    `json:"id" dynamodbav:"id"`
	Email     string    `json:"email" dynamodbav:"email"`
	Balance   int64     `json:"balance" dynamodbav:"balance"`
	Version   int64     `json:"version" dynamodbav:"version"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Reward is a catalog item users redeem tokens for.
type Reward struct {
	Id          string    `json:"id" dynamodbav:"id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Description string    `json:"description" dynamodbav:"description"`
	Category    string    `json:"category" dynamodbav:"category"`
	TokenCost   int64     `json:"token_cost" dynamodbav:"token_cost"`
	Stock       int64     `json:"stock" dynamodbav:"stock"`
	IsActive    bool      `json:"is_active" dynamodbav:"is_active"`
	Version     int64     `json:"version" dynamodbav:"version"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Available reports whether the reward can currently be redeemed.
func (r *Reward) Available() bool {
	return r.IsActive && r.Stock != 0
}

// RedeemDetails is the tagged payload carried only by REDEEM transactions.
// All other transaction types carry no payload.
type RedeemDetails struct {
	RewardId       string `json:"reward_id" dynamodbav:"reward_id"`
	RewardName     string `json:"reward_name" dynamodbav:"reward_name"`
	RedemptionCode string `json:"redemption_code" dynamodbav:"redemption_code"`
}

// Transaction is one append-only row in the ledger. Amount is signed:
// positive for SEND and PURCHASE, negative (minus the token cost) for REDEEM.
// Once COMPLETED a transaction is never edited or deleted.
type Transaction struct {
	Id          string            `dynamodbav:"id"`
	SenderId    string            `dynamodbav:"sender_id"`
	RecipientId string            `dynamodbav:"recipient_id"`
	Amount      int64             `dynamodbav:"amount"`
	Message     string            `dynamodbav:"message"`
	Type        TransactionType   `dynamodbav:"type"`
	Status      TransactionStatus `dynamodbav:"status"`
	Redemption  *RedeemDetails    `dynamodbav:"redemption,omitempty"`
	CreatedAt   time.Time         `dynamodbav:"created_at"`
}

// LeaderboardEntry is one aggregated row of the sent/received leaderboard.
type LeaderboardEntry struct {
	AccountId string `json:"account_id"`
	Total     int64  `json:"total"`
}

// NewRedemptionCode returns a short, human-enterable voucher code.
func NewRedemptionCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:12])
}
