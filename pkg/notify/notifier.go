package notify

import (
	"context"
	"time"
)

// TransferEvent is the payload emitted after a transfer commits. It carries
// everything the dispatcher needs to format a notification without reading
// the store again.
type TransferEvent struct {
	TransactionId  string    `json:"transaction_id"`
	SenderId       string    `json:"sender_id"`
	RecipientId    string    `json:"recipient_id"`
	RecipientEmail string    `json:"recipient_email"`
	Amount         int64     `json:"amount"`
	Message        string    `json:"message"`
	CompletedAt    time.Time `json:"completed_at"`
}

// Notifier defines the interface for handing a transfer-completed event to
// the notification pipeline. Enqueueing happens strictly after the atomic
// commit and is best-effort: callers log failures and never surface them.
type Notifier interface {
	// TransferCompleted enqueues the event for asynchronous delivery.
	TransferCompleted(ctx context.Context, event *TransferEvent) error
}
