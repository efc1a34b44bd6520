package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/perkwise/token-ledger/pkg/models"
	"github.com/perkwise/token-ledger/pkg/notify"
	"github.com/perkwise/token-ledger/pkg/storage"
)

const (
	// maxMessageLength bounds the transfer message, in runes.
	maxMessageLength = 500

	// maxConflictRetries bounds how often a lost optimistic-lock race is
	// retried before it surfaces as a transient conflict.
	maxConflictRetries = 3

	defaultOpTimeout = 5 * time.Second
)

// TransferResult is returned by balance-crediting and transfer operations.
type TransferResult struct {
	NewSenderBalance int64
	Transaction      *models.Transaction
}

// LedgerEngine orchestrates transfers and simulated purchases. All balance
// mutations happen inside the store's atomic units; the engine owns
// validation, the bounded retry policy and the post-commit notification.
type LedgerEngine struct {
	accounts  storage.AccountStore
	writer    storage.LedgerWriter
	notifier  notify.Notifier
	opTimeout time.Duration
}

// NewLedgerEngine creates a new LedgerEngine. A nil notifier disables
// notification dispatch.
func NewLedgerEngine(accounts storage.AccountStore, writer storage.LedgerWriter, notifier notify.Notifier, opTimeout time.Duration) *LedgerEngine {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	return &LedgerEngine{
		accounts:  accounts,
		writer:    writer,
		notifier:  notifier,
		opTimeout: opTimeout,
	}
}

// Transfer moves amount tokens from the sender to the account behind
// recipientEmail and appends exactly one SEND transaction. The recipient's
// view of the transfer is derived from that same row.
func (e *LedgerEngine) Transfer(ctx context.Context, senderID, recipientEmail string, amount int64, message string) (*TransferResult, error) {
	if amount <= 0 {
		return nil, &storage.ValidationError{Field: "amount", Reason: "must be a positive integer"}
	}
	if message == "" {
		return nil, &storage.ValidationError{Field: "message", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(message) > maxMessageLength {
		return nil, &storage.ValidationError{Field: "message", Reason: "must be at most 500 characters"}
	}

	recipient, err := e.resolveRecipient(ctx, recipientEmail)
	if err != nil {
		return nil, err
	}
	if recipient.Id == senderID {
		return nil, storage.ErrSelfTransfer
	}

	var (
		sender *models.Account
		tx     *models.Transaction
	)
	err = e.withRetries(ctx, func(opCtx context.Context) error {
		var txErr error
		sender, tx, txErr = e.writer.TransferTokens(opCtx, senderID, recipient.Id, amount, message)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	// Notification dispatch is outside the atomic unit: its failure is
	// logged and never rolls back or fails the transfer.
	e.notifyTransfer(ctx, tx, recipient.Email)

	return &TransferResult{
		NewSenderBalance: sender.Balance,
		Transaction:      tx,
	}, nil
}

// Purchase credits amount tokens to the account. Purchases are simulated,
// there is no payment gateway behind them.
func (e *LedgerEngine) Purchase(ctx context.Context, userID string, amount int64) (*TransferResult, error) {
	if amount <= 0 {
		return nil, &storage.ValidationError{Field: "amount", Reason: "must be a positive integer"}
	}

	var (
		account *models.Account
		tx      *models.Transaction
	)
	err := e.withRetries(ctx, func(opCtx context.Context) error {
		var err error
		account, tx, err = e.writer.PurchaseTokens(opCtx, userID, amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &TransferResult{
		NewSenderBalance: account.Balance,
		Transaction:      tx,
	}, nil
}

// Balance returns the account's current balance.
func (e *LedgerEngine) Balance(ctx context.Context, userID string) (int64, error) {
	opCtx, cancel := context.WithTimeout(ctx, e.opTimeout)
	defer cancel()

	account, err := e.accounts.GetAccount(opCtx, userID)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

func (e *LedgerEngine) resolveRecipient(ctx context.Context, email string) (*models.Account, error) {
	opCtx, cancel := context.WithTimeout(ctx, e.opTimeout)
	defer cancel()

	return e.accounts.GetAccountByEmail(opCtx, email)
}

// withRetries runs op under the per-operation timeout and retries lost
// optimistic-lock races a bounded number of times. Any other error, including
// a genuine shortfall, surfaces immediately.
func (e *LedgerEngine) withRetries(ctx context.Context, op func(context.Context) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		opCtx, cancel := context.WithTimeout(ctx, e.opTimeout)
		err = op(opCtx)
		cancel()

		if !errors.Is(err, storage.ErrConcurrencyConflict) {
			return err
		}
	}
	return err
}

func (e *LedgerEngine) notifyTransfer(ctx context.Context, tx *models.Transaction, recipientEmail string) {
	if e.notifier == nil {
		return
	}

	event := &notify.TransferEvent{
		TransactionId:  tx.Id,
		SenderId:       tx.SenderId,
		RecipientId:    tx.RecipientId,
		RecipientEmail: recipientEmail,
		Amount:         tx.Amount,
		Message:        tx.Message,
		CompletedAt:    tx.CreatedAt,
	}
	if err := e.notifier.TransferCompleted(ctx, event); err != nil {
		slog.Error("CRITICAL: transfer committed but event enqueue failed",
			"transaction_id", tx.Id, "error", err)
	}
}
