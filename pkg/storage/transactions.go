package storage

import (
	"context"

	"github.com/perkwise/token-ledger/pkg/models"
)

// LeaderboardKind selects which side of SEND rows the leaderboard aggregates.
type LeaderboardKind string

const (
	LeaderboardSent     LeaderboardKind = "sent"
	LeaderboardReceived LeaderboardKind = "received"
)

// TransactionReader defines the interface for reading the transaction log.
// All reads are side-effect-free.
type TransactionReader interface {
	// GetTransaction retrieves a transaction by its ID.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// ListUserTransactions retrieves transactions where the account is sender
	// or recipient, ordered by (created_at desc, id desc) for deterministic
	// pagination.
	ListUserTransactions(ctx context.Context, userID string, limit, offset int) ([]models.Transaction, error)

	// ListTransactionsByStatus retrieves the most recent transactions in the
	// given status across all accounts. The recent feed reads COMPLETED rows;
	// the audit sweep probes for PENDING/FAILED rows, which must never exist.
	ListTransactionsByStatus(ctx context.Context, status models.TransactionStatus, limit int32) ([]models.Transaction, error)

	// AggregateLeaderboard sums SEND amounts grouped by sender or recipient,
	// ordered descending by total with ties broken by account id ascending.
	AggregateLeaderboard(ctx context.Context, kind LeaderboardKind, limit int) ([]models.LeaderboardEntry, error)
}

// LedgerWriter defines the interface for the value-moving operations. Each
// method commits its balance mutations together with the transaction-log
// append as one atomic unit: either everything is applied and the returned
// transaction is COMPLETED, or nothing is.
type LedgerWriter interface {
	// TransferTokens atomically debits the sender, credits the recipient and
	// appends one SEND transaction. Returns the updated sender account.
	TransferTokens(ctx context.Context, senderID, recipientID string, amount int64, message string) (*models.Account, *models.Transaction, error)

	// RedeemReward atomically debits the user by the reward's token cost,
	// decrements limited stock and appends a REDEEM transaction carrying the
	// redemption payload. Returns the updated account.
	RedeemReward(ctx context.Context, userID, rewardID string) (*models.Account, *models.Transaction, error)

	// PurchaseTokens atomically credits the user and appends a PURCHASE
	// transaction. Purchases are simulated credits; there is no gateway.
	PurchaseTokens(ctx context.Context, userID string, amount int64) (*models.Account, *models.Transaction, error)
}

// TransactionStore combines the reader and writer interfaces.
type TransactionStore interface {
	TransactionReader
	LedgerWriter
}
