package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/perkwise/token-ledger/pkg/models"
	"github.com/perkwise/token-ledger/pkg/storage"
)

// RedemptionResult is returned by a successful redemption.
type RedemptionResult struct {
	NewBalance     int64
	RedemptionCode string
	Transaction    *models.Transaction
}

// RedemptionEngine orchestrates reward redemptions. The balance debit, the
// stock decrement and the transaction append commit or fail together in the
// store; the engine adds the bounded retry policy for lost races.
type RedemptionEngine struct {
	writer    storage.LedgerWriter
	opTimeout time.Duration
}

// NewRedemptionEngine creates a new RedemptionEngine.
func NewRedemptionEngine(writer storage.LedgerWriter, opTimeout time.Duration) *RedemptionEngine {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	return &RedemptionEngine{
		writer:    writer,
		opTimeout: opTimeout,
	}
}

// Redeem exchanges the reward's token cost for a redemption code. The REDEEM
// transaction records the debit with a negative amount and carries the
// reward id, name and code as its payload.
func (e *RedemptionEngine) Redeem(ctx context.Context, userID, rewardID string) (*RedemptionResult, error) {
	var (
		account *models.Account
		tx      *models.Transaction
	)

	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		opCtx, cancel := context.WithTimeout(ctx, e.opTimeout)
		account, tx, err = e.writer.RedeemReward(opCtx, userID, rewardID)
		cancel()

		if !errors.Is(err, storage.ErrConcurrencyConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	return &RedemptionResult{
		NewBalance:     account.Balance,
		RedemptionCode: tx.Redemption.RedemptionCode,
		Transaction:    tx,
	}, nil
}
